package editor

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/schedulist/schedulist/internal/models"
)

// Clipboard copies text to the OS clipboard. Fire-and-forget: no retry,
// toast feedback only.
type Clipboard interface {
	Copy(text string) error
}

// Sharer hands a URL to the OS share surface.
type Sharer interface {
	Share(link string) error
}

// DuplicateParams encodes an event type into query parameters for the
// creation flow, so a separate form can pre-populate from them. The field
// names are a cross-view contract; teamId is omitted entirely, not left
// empty, when the item does not belong to a team.
func DuplicateParams(group models.Group, et models.EventType) url.Values {
	v := url.Values{}
	v.Set("dialog", "duplicate")
	v.Set("title", et.Title)
	v.Set("slug", et.Slug)
	v.Set("description", et.Description)
	v.Set("length", strconv.Itoa(et.Length))
	v.Set("schedulingType", string(et.SchedulingType))
	v.Set("pageSlug", group.Slug)
	if group.IsTeam() {
		v.Set("teamId", strconv.FormatInt(group.TeamID, 10))
	}
	return v
}

// PublicLink composes the bookable URL {base}/{profile-slug}/{item-slug}.
func PublicLink(baseURL, profileSlug, itemSlug string) string {
	return strings.TrimRight(baseURL, "/") + "/" + profileSlug + "/" + itemSlug
}

// CopyLink copies an item's public link, reporting the outcome as a toast.
func (e *Editor) CopyLink(clip Clipboard, baseURL string, group models.Group, et models.EventType) {
	link := PublicLink(baseURL, group.Slug, et.Slug)
	if err := clip.Copy(link); err != nil {
		e.notify.Error("Could not copy link: " + err.Error())
		return
	}
	e.notify.Success("Link copied to clipboard")
}

// ShareLink offers an item's public link to the OS share surface.
func (e *Editor) ShareLink(sharer Sharer, baseURL string, group models.Group, et models.EventType) {
	link := PublicLink(baseURL, group.Slug, et.Slug)
	if err := sharer.Share(link); err != nil {
		e.notify.Error("Could not share link: " + err.Error())
		return
	}
	e.notify.Success("Link shared")
}
