package cmds

import (
	"clientreg/internal/flow"
	"clientreg/internal/types"
	"context"
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
	log "github.com/sirupsen/logrus"
)

// ImportFile is the layout of a batch registration file:
//
//	clients:
//	  - name: Ana Gómez
//	    email: ana@x.com
//	    phone: "5551234"
type ImportFile struct {
	Clients []types.ClientFields `yaml:"clients"`
}

// ImportClients registers every client listed in the YAML file at path.
// The whole file is checked first; nothing is registered if any entry misses a field.
func ImportClients(ctx context.Context, d *flow.Dispatcher, path string) ([]types.ClientRecord, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f ImportFile
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	for i, c := range f.Clients {
		if err := c.Trimmed().Require(); err != nil {
			return nil, fmt.Errorf("%s: client #%d: %w", path, i+1, err)
		}
	}

	out := make([]types.ClientRecord, 0, len(f.Clients))
	for _, c := range f.Clients {
		res, err := d.Dispatch(ctx, flow.Request{Action: types.ActionRegister, Fields: c.Trimmed()})
		if err != nil {
			return out, err
		}
		out = append(out, *res.Record)
	}
	log.WithFields(log.Fields{"file": path, "count": len(out)}).Info("clients imported")
	return out, nil
}
