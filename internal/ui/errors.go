package ui

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"flintmc/internal/domain"
	"flintmc/internal/storage"
)

// ErrorViewer displays assertion failures from the last run in an
// interactive TUI.
type ErrorViewer struct {
	storage storage.Storage
}

// NewErrorViewer creates a new ErrorViewer.
func NewErrorViewer(st storage.Storage) *ErrorViewer {
	return &ErrorViewer{storage: st}
}

// View opens the failure browser. Failures can be marked resolved with R;
// the resolved flags are persisted back through storage.
func (ev *ErrorViewer) View(results *domain.RunOutput) error {
	if len(results.Details) == 0 {
		color.Green("✓ No assertion failures found!")
		return nil
	}

	resolved := make(map[int]bool)
	for i, failure := range results.Details {
		if failure.Resolved {
			resolved[i] = true
		}
	}

	saveResolved := func() error {
		for i := range results.Details {
			results.Details[i].Resolved = resolved[i]
		}
		return ev.storage.SaveOutput(results)
	}

	app := tview.NewApplication()

	list := tview.NewList().
		ShowSecondaryText(false).
		SetHighlightFullLine(true)

	itemText := func(index int) string {
		failure := results.Details[index]
		label := fmt.Sprintf("%s @ tick %d", failure.TestName, failure.Tick)
		if resolved[index] {
			return fmt.Sprintf("[gray]✓ [yellow]%d.[gray] %s[white]", index+1, label)
		}
		return fmt.Sprintf("[yellow]%d.[white] %s", index+1, label)
	}

	for i := range results.Details {
		list.AddItem(itemText(i), "", 0, nil)
	}
	list.SetMainTextColor(tview.Styles.PrimaryTextColor).
		SetSelectedTextColor(tcell.ColorWhite).
		SetSelectedBackgroundColor(tcell.ColorDarkCyan)

	detailsView := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(true).
		SetWordWrap(true)

	headerView := tview.NewTextView().
		SetTextAlign(tview.AlignCenter).
		SetDynamicColors(true)

	countUnresolved := func() int {
		count := 0
		for i := range results.Details {
			if !resolved[i] {
				count++
			}
		}
		return count
	}

	updateHeader := func() {
		headerView.SetText(fmt.Sprintf(
			" Assertion Failures (%d total, %d unresolved) | ↑↓ navigate, [yellow]R[white] mark resolved, Ctrl+C exit ",
			len(results.Details), countUnresolved()))
	}
	updateHeader()

	updateDetails := func() {
		index := list.GetCurrentItem()
		if index < 0 || index >= len(results.Details) {
			return
		}
		failure := results.Details[index]
		detailsView.SetText(fmt.Sprintf(
			"[yellow]Test:[white] %s\n[yellow]Tick:[white] %d\n[yellow]Position:[white] %s\n\n[yellow]Expected:[white] %s\n[yellow]Observed:[white] %s\n\n[red]%s[white]",
			failure.TestName, failure.Tick, failure.Pos,
			failure.Expected, failure.Observed, failure.Message))
	}
	updateDetails()

	list.SetChangedFunc(func(index int, mainText, secondaryText string, shortcut rune) {
		updateDetails()
	})

	list.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Rune() == 'r' || event.Rune() == 'R' {
			index := list.GetCurrentItem()
			if index >= 0 && index < len(results.Details) {
				resolved[index] = !resolved[index]
				list.SetItemText(index, itemText(index), "")
				updateHeader()
				_ = saveResolved()
			}
			return nil
		}
		return event
	})

	flex := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(headerView, 1, 0, false).
		AddItem(tview.NewFlex().
			SetDirection(tview.FlexColumn).
			AddItem(list, 0, 1, true).
			AddItem(detailsView, 0, 2, false), 0, 1, true)

	return app.SetRoot(flex, true).Run()
}
