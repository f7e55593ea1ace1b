package cmd

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"
	"golang.org/x/term"

	"pricelist/internal/app/client"
	"pricelist/internal/domain/price"
)

// screenRenderer paints the full table on every view change. In watch
// mode on a terminal it repaints in place; piped output gets plain
// sequential tables.
type screenRenderer struct {
	out   io.Writer
	clear bool
}

func newScreenRenderer(out *os.File) *screenRenderer {
	return &screenRenderer{
		out:   out,
		clear: term.IsTerminal(int(out.Fd())),
	}
}

func (r *screenRenderer) Render(view client.View) {
	if r.clear {
		fmt.Fprint(r.out, "\033[H\033[2J")
	}
	printHeader(r.out, view)
	printTable(r.out, view.Prices)
}

func printHeader(out io.Writer, view client.View) {
	status := color.New(color.FgGreen).Sprint("online")
	if !view.Online {
		status = color.New(color.FgRed).Sprint("offline, showing local data")
	}

	filter := view.SelectedBrand
	if view.SearchTerm != "" {
		filter = fmt.Sprintf("%s / %q", filter, view.SearchTerm)
	}

	fmt.Fprintf(out, "Price list  [%s]  brand: %s  records: %d\n\n",
		status, filter, len(view.Prices))
}

func printTable(out io.Writer, prices []price.Price) {
	if len(prices) == 0 {
		fmt.Fprintln(out, "No records found")
		return
	}

	now := time.Now()
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tBRAND\tCODE\tPRICE\tDESCRIPTION\tUPDATED")

	for _, p := range prices {
		id := p.ID
		if client.IsTempID(id) {
			id = "(pending)"
		} else if len(id) > 8 {
			id = id[:8]
		}

		fmt.Fprintf(w, "%s\t%s\t%s\tR$ %.2f\t%s\t%s\n",
			id, p.Brand, p.Code, p.Value,
			truncate(p.Description, 40),
			client.TimeAgo(p.UpdatedAt, now))
	}

	w.Flush()
}

func truncate(s string, length int) string {
	runes := []rune(s)
	if len(runes) <= length {
		return s
	}
	return string(runes[:length-3]) + "..."
}

// cliNotifier prints user-facing messages with a colored prefix.
type cliNotifier struct {
	out io.Writer
}

func newNotifier(out io.Writer) *cliNotifier {
	return &cliNotifier{out: out}
}

func (n *cliNotifier) Success(msg string) {
	color.New(color.FgGreen).Fprintf(n.out, "✓ %s\n", msg)
}

func (n *cliNotifier) Info(msg string) {
	color.New(color.FgYellow).Fprintf(n.out, "• %s\n", msg)
}

func (n *cliNotifier) Error(msg string) {
	color.New(color.FgRed).Fprintf(n.out, "✗ %s\n", msg)
}
