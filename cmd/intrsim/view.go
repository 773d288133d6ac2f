package main

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/spf13/cobra"

	"intrsim/internal/kernel"
)

func newViewCmd() *cobra.Command {
	opts := &runOptions{}
	cmd := &cobra.Command{
		Use:   "view <trace>",
		Short: "Simulate a trace and browse the timeline and snapshots in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := opts.simulate(cmd, args[0])
			if err != nil {
				return err
			}
			return newResultView(args[0], res).app.Run()
		},
	}
	opts.bind(cmd)
	return cmd
}

// resultView shows the execution timeline and the status snapshots side by
// side. Tab switches focus, q quits.
type resultView struct {
	timeline *tview.TextView
	status   *tview.TextView
	footer   *tview.TextView
	cols     *tview.Flex
	rows     *tview.Flex
	app      *tview.Application
}

func newResultView(name string, res kernel.Result) *resultView {
	v := &resultView{
		timeline: tview.NewTextView().
			SetWrap(false).
			SetText(res.ExecutionText()),
		status: tview.NewTextView().
			SetWrap(false).
			SetText(res.StatusText()),
		footer: tview.NewTextView().
			SetText(fmt.Sprintf("%s: %d events, %d snapshots, ends at %d ms  |  Tab: switch pane  q: quit",
				name, len(res.Timeline), len(res.Snapshots), res.End)),
		cols: tview.NewFlex(),
		rows: tview.NewFlex().
			SetDirection(tview.FlexRow),
		app: tview.NewApplication(),
	}
	v.timeline.SetBorder(true).SetTitle(" execution ")
	v.status.SetBorder(true).SetTitle(" system status ")
	v.footer.SetBackgroundColor(tcell.ColorDarkBlue)
	v.cols.
		AddItem(v.timeline, 0, 1, true).
		AddItem(v.status, 0, 1, false)
	v.rows.
		AddItem(v.cols, 0, 1, true).
		AddItem(v.footer, 1, 0, false)
	v.app.SetRoot(v.rows, true)

	v.app.SetInputCapture(func(ev *tcell.EventKey) *tcell.EventKey {
		switch {
		case ev.Key() == tcell.KeyTab:
			if v.timeline.HasFocus() {
				v.app.SetFocus(v.status)
			} else {
				v.app.SetFocus(v.timeline)
			}
			return nil
		case ev.Rune() == 'q':
			v.app.Stop()
			return nil
		}
		return ev
	})
	return v
}
