package options

import (
	"encoding/json"
	"fmt"

	"github.com/fatih/color"
	base "github.com/n3wscott/cli-base/pkg/commands/options"
)

// HandleError prints err as a JSON object when JSON output was requested and
// swallows it, otherwise it returns err unchanged.
func HandleError(o *base.OutputOptions, err error) error {
	if o == nil || !o.JSON || err == nil {
		return err
	}
	b, merr := json.Marshal(map[string]string{"error": err.Error()})
	if merr != nil {
		return merr
	}
	_, _ = fmt.Fprintln(color.Output, string(b))
	return nil
}
