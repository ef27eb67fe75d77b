package ui

import (
	"go.uber.org/zap"

	"github.com/ironyy/ironyy/internal/store"
)

// Navigator owns the page stack. The application starts on [HomePage] and
// runs until the stack is empty.
type Navigator struct {
	pages   []Page
	db      *store.Database
	prompts *Prompts
	log     *zap.Logger
}

// NewNavigator returns a navigator positioned on the home page.
func NewNavigator(db *store.Database, prompts *Prompts, log *zap.Logger) *Navigator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Navigator{
		pages:   []Page{&HomePage{DB: db}},
		db:      db,
		prompts: prompts,
		log:     log,
	}
}

// CurrentPage returns the top of the stack, or nil when the application
// should exit.
func (n *Navigator) CurrentPage() Page {
	if len(n.pages) == 0 {
		return nil
	}
	return n.pages[len(n.pages)-1]
}

func (n *Navigator) push(page Page) {
	n.pages = append(n.pages, page)
}

func (n *Navigator) pop() {
	if len(n.pages) > 0 {
		n.pages = n.pages[:len(n.pages)-1]
	}
}

// Dispatch applies one page action: navigation manipulates the stack, domain
// actions prompt the user and mutate the database.
func (n *Navigator) Dispatch(action Action) error {
	switch action.Kind {
	case ActionNone:
		return nil

	case ActionExit:
		n.pages = nil
		return nil

	case ActionBack:
		n.pop()
		return nil

	case ActionOpenEpic:
		n.push(&EpicDetail{EpicID: action.ID, DB: n.db})
		return nil

	case ActionOpenStory:
		n.push(&StoryDetail{StoryID: action.ID, DB: n.db})
		return nil

	case ActionCreateEpic:
		epic, err := n.prompts.CreateEpic()
		if err != nil {
			return err
		}
		id, err := n.db.CreateEpic(epic)
		if err != nil {
			return err
		}
		n.log.Debug("epic created from prompt", zap.Uint32("id", id))
		return nil

	case ActionCreateStory:
		story, err := n.prompts.CreateStory()
		if err != nil {
			return err
		}
		_, err = n.db.CreateStory(action.ID, story)
		return err

	case ActionUpdateEpicStatus:
		status, ok, err := n.prompts.UpdateStatus()
		if err != nil || !ok {
			return err
		}
		return n.db.UpdateEpicStatus(action.ID, status)

	case ActionUpdateStoryStatus:
		status, ok, err := n.prompts.UpdateStatus()
		if err != nil || !ok {
			return err
		}
		return n.db.UpdateStoryStatus(action.ID, status)

	case ActionDeleteEpic:
		confirmed, err := n.prompts.DeleteEpic()
		if err != nil || !confirmed {
			return err
		}
		if err := n.db.DeleteEpic(action.ID); err != nil {
			return err
		}
		n.pop()
		return nil

	case ActionDeleteStory:
		confirmed, err := n.prompts.DeleteStory()
		if err != nil || !confirmed {
			return err
		}
		if err := n.db.DeleteStory(action.ID); err != nil {
			return err
		}
		n.pop()
		return nil

	default:
		return nil
	}
}
