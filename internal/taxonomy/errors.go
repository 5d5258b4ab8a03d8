package taxonomy

import (
	"fmt"
	"strings"
)

// SourceSchemaError reports a static source file that parsed as JSON but
// violated the taxonomy schema. Loading recovers from it (the source is
// skipped); the error exists for the diagnostics log.
type SourceSchemaError struct {
	Issues []string
}

func (e *SourceSchemaError) Error() string {
	if len(e.Issues) == 0 {
		return "taxonomy source does not match schema"
	}
	return fmt.Sprintf("taxonomy source does not match schema: %s", strings.Join(e.Issues, "; "))
}
