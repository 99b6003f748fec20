package service

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"survey_backend/internal/util"
)

const sampleCSV = "email;first_name;last_name\n" +
	"ana@example.com;Ana;Nowak\n" +
	"jan@example.com;Jan;Kowalski\n" +
	"ana@example.com;Ana;Duplicated\n"

func TestImportCSVPreview(t *testing.T) {
	e := newEnv(t)
	creator := e.createCreator(t)
	svc := NewIntervieweeService(e.interviewees, e.creators)

	result, err := svc.ImportCSV(creator.ID, strings.NewReader(sampleCSV), false)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	// 文件内重复行只算一次
	if len(result.NewlyAdded) != 2 || len(result.AlreadyExists) != 0 {
		t.Fatalf("unexpected split: new=%d exists=%d", len(result.NewlyAdded), len(result.AlreadyExists))
	}

	// 预览模式不落库
	list, err := e.creators.ListInterviewees(creator.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("preview must not persist, got %d", len(list))
	}
}

func TestImportCSVSaveAndDedupe(t *testing.T) {
	e := newEnv(t)
	creator := e.createCreator(t)
	svc := NewIntervieweeService(e.interviewees, e.creators)

	if _, err := svc.ImportCSV(creator.ID, strings.NewReader(sampleCSV), true); err != nil {
		t.Fatalf("first import: %v", err)
	}

	// 再导入同一文件：全部归入已存在
	result, err := svc.ImportCSV(creator.ID, strings.NewReader(sampleCSV), true)
	if err != nil {
		t.Fatalf("second import: %v", err)
	}
	if len(result.NewlyAdded) != 0 || len(result.AlreadyExists) != 2 {
		t.Fatalf("unexpected split: new=%d exists=%d", len(result.NewlyAdded), len(result.AlreadyExists))
	}

	list, err := e.creators.ListInterviewees(creator.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 interviewees, got %d", len(list))
	}
}

func TestCreateIntervieweeDedupesByEmail(t *testing.T) {
	e := newEnv(t)
	creator := e.createCreator(t)
	svc := NewIntervieweeService(e.interviewees, e.creators)

	created, err := svc.Create(creator.ID, IntervieweeCreateRequest{Email: "Ana@Example.com", FirstName: "Ana"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Email != "ana@example.com" {
		t.Fatalf("email not normalized: %q", created.Email)
	}

	_, err = svc.Create(creator.ID, IntervieweeCreateRequest{Email: "ana@example.com"})
	if !errors.Is(err, util.ErrIntervieweeExists) {
		t.Fatalf("expected ErrIntervieweeExists, got %v", err)
	}

	list, err := e.creators.ListInterviewees(creator.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected 1 interviewee, got %d", len(list))
	}
}

func TestUpdateInterviewee(t *testing.T) {
	e := newEnv(t)
	creator := e.createCreator(t)
	svc := NewIntervieweeService(e.interviewees, e.creators)

	created, err := svc.Create(creator.ID, IntervieweeCreateRequest{Email: "jan@example.com", FirstName: "Jan"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	lastName := "Kowalski"
	updated, err := svc.Update(created.ID, IntervieweeUpdateRequest{LastName: &lastName})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.LastName != "Kowalski" || updated.FirstName != "Jan" {
		t.Fatalf("unexpected record: %+v", updated)
	}
}

func TestExportCSVRoundTrip(t *testing.T) {
	e := newEnv(t)
	creator := e.createCreator(t)
	svc := NewIntervieweeService(e.interviewees, e.creators)

	if _, err := svc.ImportCSV(creator.ID, strings.NewReader(sampleCSV), true); err != nil {
		t.Fatalf("import: %v", err)
	}

	var buf bytes.Buffer
	if err := svc.ExportCSV(creator.ID, &buf); err != nil {
		t.Fatalf("export: %v", err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "email;first_name;last_name\n") {
		t.Fatalf("missing header: %q", out)
	}
	if !strings.Contains(out, "ana@example.com;Ana;Nowak") ||
		!strings.Contains(out, "jan@example.com;Jan;Kowalski") {
		t.Fatalf("rows missing: %q", out)
	}
}
