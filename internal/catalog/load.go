package catalog

import (
	"fmt"
	"os"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"
)

// Load error codes (E300-E399)
const (
	ErrCodeReadFailed      = "E300" // catalog file could not be read
	ErrCodeInvalidCUE      = "E301" // CUE syntax or evaluation error
	ErrCodeUnknownSeason   = "E302" // seasonal key is not a season
	ErrCodeEmptyTips       = "E303" // tip list for a type is empty
	ErrCodeMissingText     = "E304" // title or message is empty
	ErrCodeInvalidPriority = "E305" // seasonal priority must be positive
)

// LoadError reports a problem in a catalog file.
type LoadError struct {
	Code    string
	Field   string
	Message string
	Pos     token.Pos
}

func (e *LoadError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(),
			e.Code, e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s: %s", e.Code, e.Field, e.Message)
}

// LoadFile reads a CUE catalog file and returns the default catalog with
// the file's entries laid over it.
//
// The file has the shape:
//
//	tips: {
//		Basil: [{title: "Pinch Flowers", message: "...", icon: "🌿"}]
//	}
//	seasonal: {
//		winter: {only_type: "Basil", title: "...", message: "Keep {plant} warm.", icon: "❄️", priority: 4}
//	}
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{
			Code:    ErrCodeReadFailed,
			Field:   "file",
			Message: err.Error(),
		}
	}
	return Compile(data, path)
}

// Compile parses CUE source and overlays it on the default catalog.
func Compile(src []byte, filename string) (*Catalog, error) {
	overlay, err := Parse(src, filename)
	if err != nil {
		return nil, err
	}
	return Default().Overlay(overlay), nil
}

// Parse parses CUE source into a catalog holding only the file's entries.
func Parse(src []byte, filename string) (*Catalog, error) {
	ctx := cuecontext.New()
	v := ctx.CompileBytes(src, cue.Filename(filename))
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	tips, err := parseTips(v.LookupPath(cue.ParsePath("tips")))
	if err != nil {
		return nil, err
	}

	seasonal, err := parseSeasonal(v.LookupPath(cue.ParsePath("seasonal")))
	if err != nil {
		return nil, err
	}

	return New(tips, seasonal), nil
}

func parseTips(v cue.Value) (map[string][]Tip, error) {
	tips := make(map[string][]Tip)
	if !v.Exists() {
		return tips, nil
	}

	iter, err := v.Fields()
	if err != nil {
		return nil, formatCUEError(err)
	}

	for iter.Next() {
		plantType := iter.Selector().Unquoted()
		field := "tips." + plantType

		var entries []Tip
		if err := iter.Value().Decode(&entries); err != nil {
			return nil, formatCUEError(err)
		}
		if len(entries) == 0 {
			return nil, &LoadError{
				Code:    ErrCodeEmptyTips,
				Field:   field,
				Message: "at least one tip is required",
				Pos:     iter.Value().Pos(),
			}
		}
		for i, tip := range entries {
			if strings.TrimSpace(tip.Title) == "" || strings.TrimSpace(tip.Message) == "" {
				return nil, &LoadError{
					Code:    ErrCodeMissingText,
					Field:   fmt.Sprintf("%s[%d]", field, i),
					Message: "title and message are required",
					Pos:     iter.Value().Pos(),
				}
			}
		}
		tips[plantType] = entries
	}

	return tips, nil
}

func parseSeasonal(v cue.Value) (map[Season]SeasonalTip, error) {
	seasonal := make(map[Season]SeasonalTip)
	if !v.Exists() {
		return seasonal, nil
	}

	iter, err := v.Fields()
	if err != nil {
		return nil, formatCUEError(err)
	}

	for iter.Next() {
		season := Season(iter.Selector().Unquoted())
		field := "seasonal." + string(season)
		pos := iter.Value().Pos()

		if !season.IsValid() {
			return nil, &LoadError{
				Code:    ErrCodeUnknownSeason,
				Field:   field,
				Message: fmt.Sprintf("unknown season %q: must be one of %v", season, Seasons),
				Pos:     pos,
			}
		}

		var tip SeasonalTip
		if err := iter.Value().Decode(&tip); err != nil {
			return nil, formatCUEError(err)
		}
		if strings.TrimSpace(tip.Title) == "" || strings.TrimSpace(tip.Message) == "" {
			return nil, &LoadError{
				Code:    ErrCodeMissingText,
				Field:   field,
				Message: "title and message are required",
				Pos:     pos,
			}
		}
		if tip.Priority <= 0 {
			return nil, &LoadError{
				Code:    ErrCodeInvalidPriority,
				Field:   field + ".priority",
				Message: fmt.Sprintf("must be positive, got %d", tip.Priority),
				Pos:     pos,
			}
		}
		seasonal[season] = tip
	}

	return seasonal, nil
}

// formatCUEError extracts position info from CUE errors.
func formatCUEError(err error) error {
	errs := errors.Errors(err)
	if len(errs) == 0 {
		return &LoadError{Code: ErrCodeInvalidCUE, Field: "cue", Message: err.Error()}
	}

	first := errs[0]
	loadErr := &LoadError{
		Code:    ErrCodeInvalidCUE,
		Field:   "cue",
		Message: first.Error(),
	}
	if positions := errors.Positions(first); len(positions) > 0 {
		loadErr.Pos = positions[0]
	}
	return loadErr
}
