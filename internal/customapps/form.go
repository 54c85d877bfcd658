package customapps

import (
	"fmt"
	"strings"

	"mylauncher/internal/command"
)

// FormInput contains data entered by the user when adding a shortcut.
type FormInput struct {
	Name    string
	Exec    string
	Icon    string
	Comment string
}

// BuildDefinition validates form data and creates a Definition. The exec
// line must resolve to a runnable command.
func BuildDefinition(in FormInput) (Definition, error) {
	def, err := sanitizeDefinition(Definition{
		Name:    in.Name,
		Exec:    in.Exec,
		Icon:    in.Icon,
		Comment: in.Comment,
	})
	if err != nil {
		return def, err
	}

	if strings.ContainsAny(def.Name, "\n\r") {
		return Definition{}, fmt.Errorf("name must be a single line")
	}
	if _, ok := command.Resolve(def.Exec); !ok {
		return Definition{}, fmt.Errorf("exec %q has nothing to launch", def.Exec)
	}
	return def, nil
}
