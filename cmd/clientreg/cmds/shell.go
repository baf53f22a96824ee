package cmds

import (
	"bufio"
	"clientreg/internal/flow"
	"clientreg/internal/presenter"
	"clientreg/internal/types"
	"context"
	"fmt"
	"io"
	"strings"
)

const shellHelp = `Options:
  register            register a client
  list [filter]       list clients (optional JMESPath filter, e.g. [?active])
  update              update a client's fields
  deactivate          deactivate a client
  quit                leave the shell
`

// Shell is the terminal rendition of the option menu: one action per line, prompting for form
// values. It returns when the input ends, on "quit", or when ctx is done.
func Shell(ctx context.Context, in io.Reader, out io.Writer, d *flow.Dispatcher) error {
	sh := &shell{sc: bufio.NewScanner(in), out: out}
	fmt.Fprint(out, shellHelp)
	for {
		if ctx.Err() != nil {
			return nil
		}
		line, ok := sh.prompt("> ")
		if !ok {
			return sh.sc.Err()
		}
		token, rest, _ := strings.Cut(strings.TrimSpace(line), " ")
		switch strings.ToLower(token) {
		case "":
			continue
		case "quit", "exit", "salir":
			return nil
		case "help", "?":
			fmt.Fprint(out, shellHelp)
			continue
		}
		req, ok := sh.readRequest(types.ParseAction(token), strings.TrimSpace(rest))
		if !ok {
			return sh.sc.Err()
		}
		if req == nil {
			continue
		}
		res, err := d.Dispatch(ctx, *req)
		if err != nil {
			return err
		}
		if err := presenter.WriteResult(out, res); err != nil {
			return err
		}
	}
}

type shell struct {
	sc  *bufio.Scanner
	out io.Writer
}

func (sh *shell) prompt(label string) (string, bool) {
	fmt.Fprint(sh.out, label)
	if !sh.sc.Scan() {
		return "", false
	}
	return sh.sc.Text(), true
}

// readRequest collects the form values for action. A nil request with ok=true means the form
// was rejected locally and nothing should be dispatched.
func (sh *shell) readRequest(action types.Action, rest string) (*flow.Request, bool) {
	req := &flow.Request{Action: action}
	switch action {
	case types.ActionRegister:
		fields, ok := sh.readFields(false)
		if !ok {
			return nil, false
		}
		if fields.Require() != nil {
			_ = presenter.WriteNotice(sh.out, *types.Failure(flow.MsgFieldsRequired))
			return nil, true
		}
		req.Fields = fields
	case types.ActionList:
		req.Filter = rest
	case types.ActionUpdate, types.ActionDeactivate:
		id, ok := sh.readID(rest)
		if !ok {
			return nil, false
		}
		if id == 0 {
			return nil, true
		}
		req.ID = id
		if action == types.ActionUpdate {
			fields, ok := sh.readFields(true)
			if !ok {
				return nil, false
			}
			req.Fields = fields
		}
	}
	return req, true
}

func (sh *shell) readID(rest string) (int, bool) {
	raw := rest
	if raw == "" {
		var ok bool
		if raw, ok = sh.prompt("Client ID: "); !ok {
			return 0, false
		}
	}
	id, err := types.ParseID(raw)
	if err != nil {
		_ = presenter.WriteNotice(sh.out, *types.Failure(flow.MsgInvalidID))
		return 0, true
	}
	return id, true
}

func (sh *shell) readFields(optional bool) (types.ClientFields, bool) {
	suffix := ": "
	if optional {
		suffix = " (blank keeps current): "
	}
	var f types.ClientFields
	for _, field := range []struct {
		label string
		dst   *string
	}{
		{"Full name", &f.Name},
		{"Email", &f.Email},
		{"Phone", &f.Phone},
	} {
		v, ok := sh.prompt(field.label + suffix)
		if !ok {
			return f, false
		}
		*field.dst = strings.TrimSpace(v)
	}
	return f, true
}
