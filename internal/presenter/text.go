package presenter

import (
	"clientreg/internal/flow"
	"clientreg/internal/types"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

var tableHeader = []string{"ID", "Name", "Email", "Phone", "Status"}

// WriteTable prints the client table, or the empty-registry message.
func WriteTable(w io.Writer, recs []types.ClientRecord) error {
	if len(recs) == 0 {
		_, err := fmt.Fprintln(w, flow.MsgNoClients)
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(tableHeader, "\t"))
	for _, r := range recs {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", r.ID, r.Name, r.Email, r.Phone, r.StatusText())
	}
	return tw.Flush()
}

// WriteNotice prints a notice as a single tagged line.
func WriteNotice(w io.Writer, n types.Notice) error {
	_, err := fmt.Fprintf(w, "[%s] %s\n", n.Kind, n.Message)
	return err
}

// WriteResult renders a dispatcher result for a terminal.
func WriteResult(w io.Writer, res flow.Result) error {
	if res.Notice != nil {
		if err := WriteNotice(w, *res.Notice); err != nil {
			return err
		}
	}
	switch res.Status {
	case flow.Listed, flow.Rejected:
		if len(res.Records) == 0 {
			_, err := fmt.Fprintln(w, flow.MsgNoMatches)
			return err
		}
		return WriteTable(w, res.Records)
	case flow.ListedEmpty:
		return WriteTable(w, res.Records)
	case flow.Registered, flow.Updated, flow.Deactivated, flow.Found:
		if res.Record != nil {
			_, err := fmt.Fprintln(w, res.Record.String())
			return err
		}
	}
	return nil
}
