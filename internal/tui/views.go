package tui

import (
	"fmt"
	"strings"

	"github.com/rivo/tview"

	"github.com/schedulist/schedulist/internal/models"
)

// headingCell renders a group's profile summary: name, membership count,
// and the public page link.
func headingCell(g models.Group) *tview.TableCell {
	label := fmt.Sprintf("[::b]%s[-:-:-]", g.Name)
	if g.IsTeam() {
		label += fmt.Sprintf(" [gray](%d members)", g.MemberCount)
	}
	if g.ReadOnly {
		label += " [red]read-only"
	}
	label += fmt.Sprintf("  [blue]/%s", g.Slug)

	cell := tview.NewTableCell(label).SetSelectable(false).SetExpansion(1)
	return cell
}

// itemCells renders one event type row: title, duration, visibility,
// scheduling type, and assigned hosts.
func itemCells(g models.Group, it models.EventType) []*tview.TableCell {
	title := it.Title
	if it.Hidden {
		title = "[gray]" + title + " (hidden)"
	}

	badges := fmt.Sprintf("%dm", it.Length)
	switch it.SchedulingType {
	case models.SchedulingRoundRobin:
		badges += " round-robin"
	case models.SchedulingCollective:
		badges += " collective"
	}

	hosts := ""
	if len(it.Hosts) > 0 {
		names := make([]string, len(it.Hosts))
		for i, h := range it.Hosts {
			names[i] = h.Name
		}
		hosts = strings.Join(names, ", ")
	}

	return []*tview.TableCell{
		tview.NewTableCell(title).SetExpansion(2),
		tview.NewTableCell("[blue]/" + g.Slug + "/" + it.Slug).SetExpansion(1),
		tview.NewTableCell("[gray]" + badges),
		tview.NewTableCell("[gray]" + hosts),
	}
}
