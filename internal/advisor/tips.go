package advisor

import "time"

const dateLayout = "2006-01-02"

var savingsTips = []string{
	"Try to save a small, fixed amount from each paycheck to slowly build an emergency fund.",
	"Avoid carrying high-interest credit card debt; paying it down early can save you a lot in interest.",
	"Before spending on wants, make sure essentials like rent, food, and transport are covered.",
	"Compare prices and student discounts before big purchases to avoid overpaying.",
	"Set a simple monthly savings goal and track your progress to stay motivated.",
	"Understand any fees on your bank accounts or cards so you can avoid unnecessary charges.",
	"Building a habit of saving is more important than the amount; even a few dollars a week adds up.",
	"Keep a basic budget of your income and key expenses so you always know what you can safely spend.",
	"Try to keep a small cash buffer in your account to avoid overdraft fees.",
	"Think in terms of trade-offs: buying one thing now may mean skipping something more important later.",
}

// TipForDate возвращает совет дня для календарной даты в UTC.
func TipForDate(t time.Time) DailyTip {
	utc := t.UTC()
	return DailyTip{
		Date: utc.Format(dateLayout),
		Tip:  savingsTips[tipIndex(utc)],
	}
}

func tipIndex(utc time.Time) int {
	return (utc.Day() + int(utc.Month())*31 + utc.Year()) % len(savingsTips)
}
