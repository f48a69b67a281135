package compose

import (
	"os"
	"path/filepath"

	"github.com/compose-spec/compose-go/v2/loader"
)

const projectNameEnvKey = "COMPOSE_PROJECT_NAME"

// for mocking in tests
var getenv = os.Getenv

// ProjectName returns the identity docker compose labels this stack's
// containers with: COMPOSE_PROJECT_NAME, then the top-level name of the
// stack, then the directory holding the first compose file.
func ProjectName(stack *StackDefinition, firstPath string) string {
	if name := getenv(projectNameEnvKey); name != "" {
		return loader.NormalizeProjectName(name)
	}
	if stack != nil {
		if name := stack.Name(); name != "" {
			return loader.NormalizeProjectName(name)
		}
	}
	return loader.NormalizeProjectName(filepath.Base(filepath.Dir(firstPath)))
}
