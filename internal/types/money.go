// README: Common money value object used across modules.
package types

// CurrencyINR is the only currency the platform charges in today.
const CurrencyINR = "INR"

type Money struct {
	Amount   int64
	Currency string
}

// Rupees builds an INR amount in whole rupees.
func Rupees(amount int64) Money {
	return Money{Amount: amount, Currency: CurrencyINR}
}
