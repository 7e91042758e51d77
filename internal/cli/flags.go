package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/studyplanner/internal/domain"
	"github.com/spf13/pflag"
)

// studyStyleFlag is a --style value restricted to the known study styles.
type studyStyleFlag struct {
	value domain.StudyStyle
}

var _ pflag.Value = (*studyStyleFlag)(nil)

func (f *studyStyleFlag) String() string { return string(f.value) }

func (f *studyStyleFlag) Set(s string) error {
	style, err := domain.ParseStudyStyle(s)
	if err != nil {
		return err
	}
	f.value = style
	return nil
}

func (f *studyStyleFlag) Type() string { return "style" }

func studyStyleNames() string {
	return strings.Join([]string{
		string(domain.StyleBalanced),
		string(domain.StyleIntensive),
		string(domain.StyleSpacedRepetition),
	}, "|")
}

// parseOptionalDate returns nil for an empty flag value.
func parseOptionalDate(flag, s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	d, err := domain.ParseDate(s)
	if err != nil {
		return nil, fmt.Errorf("--%s: use YYYY-MM-DD format", flag)
	}
	return &d, nil
}
