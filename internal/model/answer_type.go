package model

import (
	"encoding/json"
	"errors"
	"fmt"
)

var ErrUnknownAnswerType = errors.New("unknown answer type")

// AnswerType 题目类型，11个固定取值。数值编码与历史数据库保持一致。
type AnswerType int8

const (
	AnswerTypeList AnswerType = iota + 1
	AnswerTypeGridSingle
	AnswerTypeGridMultiple
	AnswerTypeScale5
	AnswerTypeScale10
	AnswerTypeScaleNPS
	AnswerTypeOpenShort
	AnswerTypeOpenLong
	AnswerTypeOpenNumeric
	AnswerTypeClosedSingle
	AnswerTypeClosedMultiple
)

// AnswerFamily 按答案载荷字段对题目类型分组
type AnswerFamily int8

const (
	FamilyOption AnswerFamily = iota + 1
	FamilyText
	FamilyNumeric
)

var answerTypeNames = map[AnswerType]string{
	AnswerTypeList:           "list",
	AnswerTypeGridSingle:     "gridSingle",
	AnswerTypeGridMultiple:   "gridMultiple",
	AnswerTypeScale5:         "scale5",
	AnswerTypeScale10:        "scale10",
	AnswerTypeScaleNPS:       "scaleNPS",
	AnswerTypeOpenShort:      "openShort",
	AnswerTypeOpenLong:       "openLong",
	AnswerTypeOpenNumeric:    "openNumeric",
	AnswerTypeClosedSingle:   "closedSingle",
	AnswerTypeClosedMultiple: "closedMultiple",
}

func (t AnswerType) String() string {
	if name, ok := answerTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("AnswerType(%d)", int8(t))
}

func (t AnswerType) Valid() bool {
	_, ok := answerTypeNames[t]
	return ok
}

// Family 返回该类型答案必须携带的载荷家族
func (t AnswerType) Family() AnswerFamily {
	switch t {
	case AnswerTypeList, AnswerTypeGridSingle, AnswerTypeGridMultiple,
		AnswerTypeClosedSingle, AnswerTypeClosedMultiple:
		return FamilyOption
	case AnswerTypeOpenShort, AnswerTypeOpenLong:
		return FamilyText
	case AnswerTypeScale5, AnswerTypeScale10, AnswerTypeScaleNPS, AnswerTypeOpenNumeric:
		return FamilyNumeric
	}
	return 0
}

// ParseAnswerType 将接口层的类型名解析为枚举值
func ParseAnswerType(name string) (AnswerType, error) {
	for t, n := range answerTypeNames {
		if n == name {
			return t, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownAnswerType, name)
}

// JSON 表示使用类型名而不是数值编码
func (t AnswerType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *AnswerType) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	parsed, err := ParseAnswerType(name)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
