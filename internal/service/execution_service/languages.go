package execution_service

import (
	"fmt"
	"sort"
	"strings"

	"github.com/careerforge/judge/internal/judge_errors"
)

// backendLanguageIDs maps the platform's language slugs to the execution
// backend's numeric identifiers. The table is fixed, anything outside it
// is rejected rather than defaulted.
var backendLanguageIDs = map[string]int{
	"c":          50,
	"cpp":        54,
	"java":       62,
	"javascript": 63,
	"python":     71,
	"typescript": 74,
}

func ResolveLanguage(slug string) (int, error) {
	id, ok := backendLanguageIDs[slug]
	if !ok {
		return 0, fmt.Errorf(
			"%w, language %q is not supported. supported languages are %s",
			judge_errors.ErrUnsupportedLanguage,
			slug,
			strings.Join(SupportedLanguages(), ", "),
		)
	}
	return id, nil
}

// SupportedLanguages lists the accepted slugs in a stable order for api
// responses and error messages.
func SupportedLanguages() []string {
	slugs := make([]string, 0, len(backendLanguageIDs))
	for slug := range backendLanguageIDs {
		slugs = append(slugs, slug)
	}
	sort.Strings(slugs)
	return slugs
}
