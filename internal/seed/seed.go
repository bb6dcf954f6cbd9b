package seed

import (
	"context"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/GoSim-25-26J-441/pms-backend/internal/projects/domain"
	"github.com/GoSim-25-26J-441/pms-backend/internal/projects/service"
)

// File is the YAML fixture layout. Projects refer to people by email.
type File struct {
	People   []Person  `yaml:"people"`
	Projects []Project `yaml:"projects"`
}

type Person struct {
	FirstName string `yaml:"first_name"`
	Surname   string `yaml:"surname"`
	Email     string `yaml:"email"`
	Address   string `yaml:"address"`
}

type Project struct {
	Name     string `yaml:"name"`
	Type     string `yaml:"type"`
	Customer string `yaml:"customer"`
	// Fields holds further edits keyed by project field name, e.g. erf or architect.
	// Role values are emails.
	Fields map[string]string `yaml:"fields"`
}

// Result counts what Apply inserted.
type Result struct {
	People   int
	Projects int
}

func Load(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open seed file: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

func Decode(r io.Reader) (*File, error) {
	var out File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&out); err != nil {
		return nil, fmt.Errorf("decode seed file: %w", err)
	}
	return &out, nil
}

// Apply inserts people, then creates each project and commits its extra
// fields through a ProjectEditor so fixtures pass the same validation as
// operator edits.
func Apply(ctx context.Context, repo service.Repository, f *File, log *zap.Logger) (Result, error) {
	if log == nil {
		log = zap.NewNop()
	}
	var res Result
	byEmail := make(map[string]int64, len(f.People))

	for _, p := range f.People {
		person, err := service.BuildPerson(p.Surname, service.PersonDetails{
			TermIsSurname: true,
			OtherName:     p.FirstName,
			Email:         p.Email,
			Address:       p.Address,
		})
		if err != nil {
			return res, fmt.Errorf("person %s: %w", p.Email, err)
		}
		id, err := repo.InsertPerson(ctx, person.FirstName, person.Surname, person.Address, person.Email)
		if err != nil {
			return res, fmt.Errorf("insert person %s: %w", p.Email, err)
		}
		byEmail[person.Email] = id
		res.People++
	}

	projects := service.NewProjectService(repo, log)
	for _, sp := range f.Projects {
		t, err := domain.ParseProjectType(sp.Type)
		if err != nil {
			return res, fmt.Errorf("project %q: %w", sp.Name, err)
		}
		customer, ok := byEmail[sp.Customer]
		if !ok {
			return res, fmt.Errorf("project %q: unknown customer %q", sp.Name, sp.Customer)
		}
		p, err := projects.Create(ctx, service.NewProjectInput{Name: sp.Name, Type: t, CustomerID: customer})
		if err != nil {
			return res, fmt.Errorf("create project %q: %w", sp.Name, err)
		}

		editor := service.NewProjectEditor(repo, *p, log)
		for name, text := range sp.Fields {
			field, err := domain.ParseProjectField(name)
			if err != nil {
				return res, fmt.Errorf("project %q: %w", sp.Name, err)
			}
			if field.IsRole() {
				id, ok := byEmail[text]
				if !ok {
					return res, fmt.Errorf("project %q: unknown %s %q", sp.Name, field, text)
				}
				err = editor.Propose(field, id)
			} else {
				err = editor.ProposeText(field, text)
			}
			if err != nil {
				return res, fmt.Errorf("project %q: %w", sp.Name, err)
			}
		}
		if _, err := editor.Commit(ctx); err != nil {
			return res, fmt.Errorf("project %q: %w", sp.Name, err)
		}
		res.Projects++
	}
	log.Info("seed applied", zap.Int("people", res.People), zap.Int("projects", res.Projects))
	return res, nil
}
