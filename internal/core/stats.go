package core

// Stats are the five aggregates shown on the dashboard cards. They are always
// computed over a user's full collection, never over a filtered view.
type Stats struct {
	TotalIncome    int64 `json:"totalIngresos"`
	TotalExpense   int64 `json:"totalGastos"`
	Balance        int64 `json:"balance"`
	PendingAmount  int64 `json:"gastoPendiente"`
	CompletedCount int   `json:"transaccionesCompletadas"`
}

// ComputeStats folds the full collection into summary figures.
//
// PendingAmount intentionally sums pending records of BOTH types, not only
// expenses. The dashboard has always reported it that way under the
// "gastoPendiente" name; keep the behavior until product says otherwise.
func ComputeStats(payments []Payment) Stats {
	var s Stats
	for _, p := range payments {
		switch p.Status {
		case StatusCompleted:
			s.CompletedCount++
			switch p.Type {
			case TypeIncome:
				s.TotalIncome += p.Amount
			case TypeExpense:
				s.TotalExpense += p.Amount
			}
		case StatusPending:
			s.PendingAmount += p.Amount
		}
	}
	s.Balance = s.TotalIncome - s.TotalExpense
	return s
}
