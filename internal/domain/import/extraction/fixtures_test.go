package extraction

import (
	"fmt"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/shopspring/decimal"
)

// statementFaker generates synthetic statement content with known answers.
type statementFaker struct {
	faker *gofakeit.Faker
}

func newStatementFaker(seed int64) *statementFaker {
	return &statementFaker{faker: gofakeit.New(seed)}
}

var fakeMerchants = []string{
	"Garuda Cafe", "Fresh Mart", "City Pharmacy", "Metro Rail", "Book Nook",
	"Blue Tokai Coffee", "Spice Kitchen", "Urban Salon", "Green Grocers", "Fuel Point",
}

var fakeLineDateLayouts = []string{
	"2006-01-02",
	"02/01/2006",
	"02-Jan-2006",
	"02 Jan 2006",
	"Jan 2, 2006",
}

func (g *statementFaker) merchant() string {
	return g.faker.RandomString(fakeMerchants)
}

// amount returns a positive amount with two fractional digits.
func (g *statementFaker) amount() decimal.Decimal {
	return decimal.New(int64(g.faker.Number(100, 9999999)), -2)
}

func (g *statementFaker) date() time.Time {
	d := g.faker.DateRange(
		time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC),
	)
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
}

func (g *statementFaker) lineDate(d time.Time) string {
	return d.Format(g.faker.RandomString(fakeLineDateLayouts))
}

// formatAmount renders a with two decimals and, at random, thousands separators.
func (g *statementFaker) formatAmount(a decimal.Decimal) string {
	s := a.StringFixed(2)
	if !g.faker.Bool() {
		return s
	}
	intPart, frac, _ := strings.Cut(s, ".")
	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return b.String() + "." + frac
}

// debitLine returns a free-text line that must be read as an expense.
func (g *statementFaker) debitLine() (string, Tx) {
	want := Tx{Date: g.date(), Description: g.merchant(), Amount: g.amount()}
	date := g.lineDate(want.Date)
	amount := g.formatAmount(want.Amount)

	var line string
	switch g.faker.Number(0, 2) {
	case 0:
		line = fmt.Sprintf("%s  %s  -%s", date, want.Description, amount)
	case 1:
		line = fmt.Sprintf("%s %s (%s)", date, want.Description, amount)
	default:
		want.Description = "DEBIT " + want.Description
		line = fmt.Sprintf("%s %s ₹%s", date, want.Description, amount)
	}
	return line, want
}

// creditLine returns a free-text line that must never be read as an expense.
func (g *statementFaker) creditLine() string {
	date := g.lineDate(g.date())
	amount := g.formatAmount(g.amount())
	switch g.faker.Number(0, 2) {
	case 0:
		return fmt.Sprintf("%s %s +%s", date, g.merchant(), amount)
	case 1:
		return fmt.Sprintf("%s %s CREDIT %s", date, g.merchant(), amount)
	default:
		return fmt.Sprintf("%s Credit refund %s -%s", date, g.merchant(), amount)
	}
}

// typedTable returns a table with a Type column and the debits it should yield.
func (g *statementFaker) typedTable(rows int) (Table, []Tx) {
	table := Table{{"Txn Date", "Narration", "Type", "Amount"}}
	var want []Tx
	for i := 0; i < rows; i++ {
		d, merchant, amount := g.date(), g.merchant(), g.amount()
		kind := "DEBIT"
		if g.faker.Bool() {
			kind = "CREDIT"
		} else {
			want = append(want, Tx{Date: d, Description: merchant, Amount: amount})
		}
		table = append(table, []string{d.Format("02/01/2006"), merchant, kind, "₹" + g.formatAmount(amount)})
	}
	return table, want
}
