package diag

import "fmt"

// Code identifies a kind of finding. The thousands digit selects the family:
// 1xxx lexical, 6xxx observability.
type Code uint16

const (
	UnknownCode Code = 0

	// Лексические
	LexInfo              Code = 1000
	LexInvalidCharacter  Code = 1001
	LexUnexpectedLineEnd Code = 1002

	// Наблюдаемость
	ObsInfo    Code = 6000
	ObsTimings Code = 6001
)

var codeTitles = map[Code]string{
	UnknownCode:          "Unknown error",
	LexInfo:              "Lexical information",
	LexInvalidCharacter:  "Invalid character",
	LexUnexpectedLineEnd: "Unexpected line end",
	ObsInfo:              "Observability information",
	ObsTimings:           "Pipeline timings",
}

var families = map[Code]string{1: "LEX", 6: "OBS"}

// ID is the stable textual form, e.g. LEX1001; unknown families give E0000.
func (c Code) ID() string {
	if prefix, ok := families[c/1000]; ok {
		return fmt.Sprintf("%s%04d", prefix, uint16(c))
	}
	return "E0000"
}

func (c Code) Title() string {
	if title, ok := codeTitles[c]; ok {
		return title
	}
	return codeTitles[UnknownCode]
}

func (c Code) String() string {
	return "[" + c.ID() + "]: " + c.Title()
}
