package investing

// DefaultWithholdingRate is the fraction of a gross dividend deducted at the
// source before the cash reaches the account.
const DefaultWithholdingRate = 0.15

// AttributeDividends turns a per-share dividend series into after-tax cash
// outflows, attributing each dividend to the split-adjusted quantity held on
// its ex-date.
//
// For every dividend the latest snapshot not after the ex-date tells the
// holding at that time; a zero quantity (dividend paid between two ownership
// periods, or before the first purchase) is skipped. The snapshot quantity is
// expressed in the share count convention of the snapshot's own date, so it is
// split-adjusted up to the ex-date before multiplying.
//
// Per-share amounts are taken as delivered by the provider: declared on the
// ex-date and therefore already comparable with the split-adjusted quantity
// held on that date. The series is never re-adjusted by replaying later splits.
func AttributeDividends(ledger *PositionLedger, dividends *History[float64], currency string, withholding float64) []Flow {
	snapshots := ledger.Snapshots()
	if len(snapshots) == 0 || dividends == nil {
		return nil
	}

	var flows []Flow
	idx := 0
	for on, perShare := range dividends.Values() {
		// advance to the latest snapshot not after the ex-date.
		for idx+1 < len(snapshots) && !snapshots[idx+1].Date.After(on) {
			idx++
		}
		snapshot := snapshots[idx]
		if snapshot.Date.After(on) || snapshot.Quantity.IsZero() {
			continue
		}
		quantity := ledger.splits.Adjust(snapshot.Quantity, snapshot.Date, on)
		gross := M(perShare, currency).Mul(quantity)
		net := gross.Mul(Q(1 - withholding))
		flows = append(flows, Flow{Date: on, Value: net})
	}
	return flows
}
