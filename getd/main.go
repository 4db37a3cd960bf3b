//Package getd fetches concept sector fund-flow rankings and consecutive
//limit-up stock listings from the remote provider, normalizes the
//heterogeneous response shapes into canonical records, and persists the
//results together with a rolling history and an HTML report.
package getd

import (
	"fundflow/global"
)

var log = global.Log
