// Package seed loads the demo dataset.
package seed

import (
	"context"
	_ "embed"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"

	"github.com/yungbote/brainsync-backend/internal/data/repos"
	types "github.com/yungbote/brainsync-backend/internal/domain"
	"github.com/yungbote/brainsync-backend/internal/platform/logger"
)

//go:embed seed.yaml
var defaultData []byte

type Dataset struct {
	Password string   `yaml:"password"`
	Users    []User   `yaml:"users"`
	Tags     []string `yaml:"tags"`
	Notes    []Note   `yaml:"notes"`
	Quizzes  []Quiz   `yaml:"quizzes"`
}

type User struct {
	Email string `yaml:"email"`
	Name  string `yaml:"name"`
}

type Note struct {
	Owner   string   `yaml:"owner"`
	Title   string   `yaml:"title"`
	Content string   `yaml:"content"`
	Summary string   `yaml:"summary"`
	Pinned  bool     `yaml:"pinned"`
	Tags    []string `yaml:"tags"`
}

type Quiz struct {
	Owner     string     `yaml:"owner"`
	Title     string     `yaml:"title"`
	Questions []Question `yaml:"questions"`
}

type Question struct {
	Text    string   `yaml:"text"`
	Options []string `yaml:"options"`
	Answer  string   `yaml:"answer"`
}

type Report struct {
	Users   int
	Tags    int
	Notes   int
	Quizzes int
}

// Default returns the bundled demo dataset.
func Default() (Dataset, error) {
	var d Dataset
	if err := yaml.Unmarshal(defaultData, &d); err != nil {
		return Dataset{}, fmt.Errorf("parse seed data: %w", err)
	}
	return d, nil
}

// Run wipes every table and loads d in a single transaction. Notes are stored without
// embeddings; the reindex command fills them in.
func Run(ctx context.Context, db *gorm.DB, log *logger.Logger, d Dataset, bcryptCost int) (Report, error) {
	log = log.With("service", "Seeder")
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(d.Password), bcryptCost)
	if err != nil {
		return Report{}, fmt.Errorf("hash seed password: %w", err)
	}

	var report Report
	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := wipe(tx); err != nil {
			return err
		}

		users := make([]*types.User, 0, len(d.Users))
		for _, u := range d.Users {
			users = append(users, &types.User{Name: u.Name, Email: u.Email, Password: string(hash)})
		}
		created, err := repos.NewUserRepo(tx, log).Create(ctx, tx, users)
		if err != nil {
			return fmt.Errorf("seed users: %w", err)
		}
		byEmail := make(map[string]*types.User, len(created))
		for _, u := range created {
			byEmail[u.Email] = u
		}

		tags, err := repos.NewTagRepo(tx, log).UpsertByNames(ctx, tx, d.Tags)
		if err != nil {
			return fmt.Errorf("seed tags: %w", err)
		}

		noteRepo := repos.NewNoteRepo(tx, log)
		for _, n := range d.Notes {
			owner, ok := byEmail[n.Owner]
			if !ok {
				return fmt.Errorf("seed note %q: unknown owner %q", n.Title, n.Owner)
			}
			note := &types.Note{UserID: owner.ID, Title: n.Title, Content: n.Content, IsPinned: n.Pinned}
			if n.Summary != "" {
				summary := n.Summary
				note.AISummary = &summary
			}
			if _, err := noteRepo.Create(ctx, tx, note, n.Tags); err != nil {
				return fmt.Errorf("seed note %q: %w", n.Title, err)
			}
		}

		quizRepo := repos.NewQuizRepo(tx, log)
		for _, q := range d.Quizzes {
			owner, ok := byEmail[q.Owner]
			if !ok {
				return fmt.Errorf("seed quiz %q: unknown owner %q", q.Title, q.Owner)
			}
			quiz := &types.Quiz{UserID: owner.ID, Title: q.Title}
			for _, qq := range q.Questions {
				quiz.Questions = append(quiz.Questions, types.Question{
					QuestionText:  qq.Text,
					Options:       qq.Options,
					CorrectAnswer: qq.Answer,
				})
			}
			if _, err := quizRepo.Create(ctx, tx, quiz); err != nil {
				return fmt.Errorf("seed quiz %q: %w", q.Title, err)
			}
		}

		report = Report{Users: len(created), Tags: len(tags), Notes: len(d.Notes), Quizzes: len(d.Quizzes)}
		return nil
	})
	if err != nil {
		return Report{}, err
	}
	log.Info("Seeding completed", "users", report.Users, "tags", report.Tags, "notes", report.Notes, "quizzes", report.Quizzes)
	return report, nil
}

// wipe deletes children before parents so it works with foreign keys enforced.
func wipe(tx *gorm.DB) error {
	if err := tx.Exec("DELETE FROM note_tag").Error; err != nil {
		return fmt.Errorf("clear note_tag: %w", err)
	}
	for _, m := range []any{&types.Question{}, &types.Quiz{}, &types.Note{}, &types.Tag{}, &types.User{}} {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(m).Error; err != nil {
			return fmt.Errorf("clear %T: %w", m, err)
		}
	}
	return nil
}
