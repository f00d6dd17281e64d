package application

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/davicafu/adminlab/internal/customer/domain"
)

var (
	firstNames = []string{"Ana", "Luis", "Marta", "Jorge", "Lucía", "Pablo", "Elena", "Diego", "Sara", "Hugo", "Noor", "Rafi", "Emma", "Liam", "Chloe", "Omar"}
	lastNames  = []string{"García", "Martínez", "López", "Sánchez", "Pérez", "Gómez", "Ruiz", "Díaz", "Hossain", "Smith", "Dubois", "Müller", "Rahman", "Rossi"}
	places     = []struct{ City, State, Country string }{
		{"Madrid", "Madrid", "Spain"},
		{"Sevilla", "Andalucía", "Spain"},
		{"Lyon", "Auvergne-Rhône-Alpes", "France"},
		{"Berlin", "Berlin", "Germany"},
		{"Dhaka", "Dhaka", "Bangladesh"},
		{"Austin", "Texas", "United States"},
		{"Leeds", "West Yorkshire", "United Kingdom"},
	}
	companies = []string{"Acme Corp", "Globex", "Initech", "Umbrella", "Hooli", "Stark Industries"}
	currency  = []string{"USD", "EUR", "GBP", "BDT"}
	languages = []string{"en", "es", "fr", "de", "bn"}
	genderSet = []string{"male", "female", "other"}
)

// fakeCustomer genera un cliente de prueba con email customer{index}@example.com.
func fakeCustomer(rnd *rand.Rand, index int, now time.Time) (*domain.Customer, error) {
	first := pick(rnd, firstNames)
	last := pick(rnd, lastNames)
	place := places[rnd.Intn(len(places))]
	username := fmt.Sprintf("%s.%s%d", strings.ToLower(first), strings.ToLower(last), index)
	birth := now.AddDate(-20-rnd.Intn(40), -rnd.Intn(12), -rnd.Intn(28)).Truncate(24 * time.Hour)

	data := domain.CustomerData{
		FirstName:         first,
		LastName:          last,
		Username:          &username,
		Email:             fmt.Sprintf("customer%d@example.com", index),
		Phone:             fmt.Sprintf("+34 6%02d %03d %03d", rnd.Intn(100), rnd.Intn(1000), rnd.Intn(1000)),
		StreetAddress:     fmt.Sprintf("%d %s Street", 1+rnd.Intn(300), pick(rnd, lastNames)),
		City:              place.City,
		State:             place.State,
		PostalCode:        fmt.Sprintf("%05d", rnd.Intn(100000)),
		Country:           place.Country,
		DateOfBirth:       &birth,
		Gender:            pick(rnd, genderSet),
		CompanyName:       pick(rnd, companies),
		VATNumber:         strings.ToUpper(fmt.Sprintf("%010x", rnd.Int63())[:10]),
		Currency:          pick(rnd, currency),
		AccountBalance:    decimal.New(rnd.Int63n(500000), -2),
		IsActive:          rnd.Intn(10) != 0, // ~90% activos
		PreferredLanguage: pick(rnd, languages),
		LastIP:            fmt.Sprintf("%d.%d.%d.%d", 1+rnd.Intn(223), rnd.Intn(256), rnd.Intn(256), 1+rnd.Intn(254)),
		ExtraInfo:         map[string]any{"notes": "seeded", "referrer": pick(rnd, companies)},
	}
	if rnd.Intn(2) == 0 {
		login := now.Add(-time.Duration(rnd.Intn(365*24)) * time.Hour)
		data.LastLoginAt = &login
	}
	return domain.NewCustomer(data, now)
}

func pick(rnd *rand.Rand, values []string) string {
	return values[rnd.Intn(len(values))]
}
