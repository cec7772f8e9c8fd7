package domain

import "github.com/shopspring/decimal"

var (
	ten     = decimal.NewFromInt(10)
	hundred = decimal.NewFromInt(100)
)

// CopperPlaces is the number of gold decimal places representable in copper.
const CopperPlaces = 2

// Coins holds an amount in the four campaign denominations. Values are signed.
// Exchange rates are fixed: 1 platinum = 10 gold = 100 silver = 1000 copper.
type Coins struct {
	Platinum decimal.Decimal `json:"platinum"`
	Gold     decimal.Decimal `json:"gold"`
	Silver   decimal.Decimal `json:"silver"`
	Copper   decimal.Decimal `json:"copper"`
}

// GoldCoins returns an amount expressed purely in gold.
func GoldCoins(gold decimal.Decimal) Coins {
	return Coins{Gold: gold}
}

// IsZero reports whether every denomination is zero.
func (c Coins) IsZero() bool {
	return c.Platinum.IsZero() && c.Gold.IsZero() && c.Silver.IsZero() && c.Copper.IsZero()
}

// HasLooseChange reports whether the amount carries silver or copper.
func (c Coins) HasLooseChange() bool {
	return !c.Silver.IsZero() || !c.Copper.IsZero()
}

// Add returns the per-denomination sum.
func (c Coins) Add(o Coins) Coins {
	return Coins{
		Platinum: c.Platinum.Add(o.Platinum),
		Gold:     c.Gold.Add(o.Gold),
		Silver:   c.Silver.Add(o.Silver),
		Copper:   c.Copper.Add(o.Copper),
	}
}

// Neg flips the sign of every denomination.
func (c Coins) Neg() Coins {
	return Coins{
		Platinum: c.Platinum.Neg(),
		Gold:     c.Gold.Neg(),
		Silver:   c.Silver.Neg(),
		Copper:   c.Copper.Neg(),
	}
}

// Abs returns the magnitude of every denomination.
func (c Coins) Abs() Coins {
	return Coins{
		Platinum: c.Platinum.Abs(),
		Gold:     c.Gold.Abs(),
		Silver:   c.Silver.Abs(),
		Copper:   c.Copper.Abs(),
	}
}

// GoldValue converts the amount to gold: p*10 + g + s/10 + c/100.
func (c Coins) GoldValue() decimal.Decimal {
	return c.Platinum.Mul(ten).
		Add(c.Gold).
		Add(c.Silver.Div(ten)).
		Add(c.Copper.Div(hundred))
}

// Normalize converts copper into silver and silver into gold at 10:1 using
// floored (Euclidean) division, so the remaining silver and copper are in
// [0, 10). Platinum is untouched. The gold value is preserved.
func (c Coins) Normalize() Coins {
	silverFromCopper := c.Copper.Div(ten).Floor()
	copper := c.Copper.Sub(silverFromCopper.Mul(ten))

	silver := c.Silver.Add(silverFromCopper)
	goldFromSilver := silver.Div(ten).Floor()
	silver = silver.Sub(goldFromSilver.Mul(ten))

	return Coins{
		Platinum: c.Platinum,
		Gold:     c.Gold.Add(goldFromSilver),
		Silver:   silver,
		Copper:   copper,
	}
}

// Equal compares two amounts denomination by denomination.
func (c Coins) Equal(o Coins) bool {
	return c.Platinum.Equal(o.Platinum) && c.Gold.Equal(o.Gold) &&
		c.Silver.Equal(o.Silver) && c.Copper.Equal(o.Copper)
}

// SplitGold decomposes a gold amount into whole gold, silver and copper.
// Fractions below one copper are truncated.
func SplitGold(total decimal.Decimal) Coins {
	gold := total.Floor()
	frac := total.Sub(gold)
	silver := frac.Mul(ten).Floor()
	copper := frac.Mul(hundred).Floor().Sub(silver.Mul(ten))
	return Coins{
		Platinum: decimal.Zero,
		Gold:     gold,
		Silver:   silver,
		Copper:   copper,
	}
}

// TruncateToCopper drops gold fractions below one copper.
func TruncateToCopper(gold decimal.Decimal) decimal.Decimal {
	return gold.Truncate(CopperPlaces)
}
