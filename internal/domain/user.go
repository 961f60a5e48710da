package domain

// User is the slice of the user aggregate this core reads and updates.
// Registration and profile CRUD live outside the core; only the coin
// balance is mutated here (debits, gacha coin grants, sell proceeds).
type User struct {
	ID       string `json:"id"`
	Nickname string `json:"nickname"`
	Coins    int    `json:"coins"`
}

// CanAfford reports whether the user can pay the given cost.
func (u *User) CanAfford(cost int) bool {
	return u.Coins >= cost
}
