// Package seed posts generated user accounts to the create-account endpoint.
package seed

import (
	"fmt"

	"github.com/backup-toolkit/internal/config"
	"github.com/backup-toolkit/internal/models"
	"github.com/brianvoe/gofakeit/v7"
)

// Generator synthesizes seed users. Emails and the password are
// deterministic; name, phone and address are random.
type Generator struct {
	faker       *gofakeit.Faker
	password    string
	emailFormat string
}

// NewGenerator creates a generator. A zero RandomSeed picks a random seed.
func NewGenerator(cfg config.SeedConfig) *Generator {
	return &Generator{
		faker:       gofakeit.New(cfg.RandomSeed),
		password:    cfg.Password,
		emailFormat: cfg.EmailFormat,
	}
}

// User returns the seed user for index
func (g *Generator) User(index int) *models.SeedUser {
	return &models.SeedUser{
		FullName: g.faker.Name(),
		Email:    fmt.Sprintf(g.emailFormat, index),
		Password: g.password,
		Phone:    g.faker.Numerify("##########"),
		Address:  g.faker.Street() + " " + g.faker.City(),
	}
}
