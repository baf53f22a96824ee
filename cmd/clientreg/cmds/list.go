package cmds

import (
	"clientreg/internal/flow"
	"clientreg/internal/presenter"
	"clientreg/internal/types"
	"context"
	"io"
)

// List prints the session's clients, optionally narrowed by a JMESPath filter.
func List(ctx context.Context, out io.Writer, d *flow.Dispatcher, filter string) error {
	res, err := d.Dispatch(ctx, flow.Request{Action: types.ActionList, Filter: filter})
	if err != nil {
		return err
	}
	return presenter.WriteResult(out, res)
}
