package service

import (
	"context"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/GoSim-25-26J-441/pms-backend/internal/projects/domain"
)

// ChangeSetView is a project with its parked change-set.
type ChangeSetView struct {
	Project  domain.Project    `json:"project"`
	Pending  map[string]string `json:"pending"`
	Warnings []string          `json:"warnings,omitempty"`
	// Dropped lists parked fields that no longer validate or now equal the stored value.
	Dropped []string `json:"dropped,omitempty"`
}

// ChangeSetService keeps a ProjectEditor's pending set in a DraftStore so it
// survives between stateless requests.
type ChangeSetService struct {
	projects *ProjectService
	drafts   DraftStore
	log      *zap.Logger
}

func NewChangeSetService(projects *ProjectService, drafts DraftStore, log *zap.Logger) *ChangeSetService {
	if log == nil {
		log = zap.NewNop()
	}
	return &ChangeSetService{projects: projects, drafts: drafts, log: log}
}

// open rebuilds an editor from the fresh project and the parked draft.
func (s *ChangeSetService) open(ctx context.Context, number int64) (*ProjectEditor, []string, error) {
	editor, err := s.projects.Editor(ctx, number)
	if err != nil {
		return nil, nil, err
	}
	draft, err := s.drafts.Load(ctx, number)
	if err != nil {
		return nil, nil, domain.WrapPersistence("load draft", err)
	}

	keys := make([]string, 0, len(draft.Entries))
	for k := range draft.Entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var dropped []string
	for _, k := range keys {
		f, err := domain.ParseProjectField(k)
		if err == nil {
			err = editor.ProposeText(f, draft.Entries[k])
		}
		if err != nil {
			dropped = append(dropped, k)
			continue
		}
		if _, ok := editor.Pending()[f]; !ok {
			dropped = append(dropped, k)
		}
	}
	return editor, dropped, nil
}

func (s *ChangeSetService) save(ctx context.Context, number int64, editor *ProjectEditor) error {
	d := &domain.Draft{ProjectNumber: number, Entries: editor.PendingText(), UpdatedAt: time.Now().UTC()}
	return domain.WrapPersistence("save draft", s.drafts.Save(ctx, d))
}

func view(editor *ProjectEditor, dropped []string) ChangeSetView {
	return ChangeSetView{
		Project:  editor.Project(),
		Pending:  editor.PendingText(),
		Warnings: editor.Warnings(),
		Dropped:  dropped,
	}
}

// View returns the project and its parked change-set.
func (s *ChangeSetService) View(ctx context.Context, number int64) (ChangeSetView, error) {
	editor, dropped, err := s.open(ctx, number)
	if err != nil {
		return ChangeSetView{}, err
	}
	if len(dropped) > 0 {
		if err := s.save(ctx, number, editor); err != nil {
			return ChangeSetView{}, err
		}
	}
	return view(editor, dropped), nil
}

// Propose parses text for field, stages it and parks the resulting change-set.
func (s *ChangeSetService) Propose(ctx context.Context, number int64, field, text string) (ChangeSetView, error) {
	editor, dropped, err := s.open(ctx, number)
	if err != nil {
		return ChangeSetView{}, err
	}
	f, err := domain.ParseProjectField(field)
	if err != nil {
		return ChangeSetView{}, err
	}
	if err := editor.ProposeText(f, text); err != nil {
		return ChangeSetView{}, err
	}
	if err := s.save(ctx, number, editor); err != nil {
		return ChangeSetView{}, err
	}
	return view(editor, dropped), nil
}

// Discard drops the parked change-set without touching the project.
func (s *ChangeSetService) Discard(ctx context.Context, number int64) error {
	return domain.WrapPersistence("delete draft", s.drafts.Delete(ctx, number))
}

// Commit applies the parked change-set in one repository update. The draft is
// removed only after the update succeeds.
func (s *ChangeSetService) Commit(ctx context.Context, number int64) (ChangeSetView, error) {
	editor, dropped, err := s.open(ctx, number)
	if err != nil {
		return ChangeSetView{}, err
	}
	warnings := editor.Warnings()
	if _, err := editor.Commit(ctx); err != nil {
		return ChangeSetView{}, err
	}
	if err := s.drafts.Delete(ctx, number); err != nil {
		s.log.Warn("draft not removed after commit", zap.Int64("project", number), zap.Error(err))
	}
	v := view(editor, dropped)
	v.Warnings = warnings
	return v, nil
}
