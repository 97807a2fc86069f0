package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordRPC(t *testing.T) {
	before := testutil.ToFloat64(RPCRequestsTotal.WithLabelValues("/test/Proc", "ok"))
	RecordRPC("/test/Proc", "ok", 0.01)
	assert.Equal(t, before+1, testutil.ToFloat64(RPCRequestsTotal.WithLabelValues("/test/Proc", "ok")))
}

func TestRecordNetOffset(t *testing.T) {
	count := testutil.ToFloat64(NetOffsetsRecorded)
	amount := testutil.ToFloat64(OffsetAmountTotal)

	RecordNetOffset(300)

	assert.Equal(t, count+1, testutil.ToFloat64(NetOffsetsRecorded))
	assert.InDelta(t, amount+300, testutil.ToFloat64(OffsetAmountTotal), 1e-9)
}

func TestRecordRejection(t *testing.T) {
	before := testutil.ToFloat64(SettlementRejections.WithLabelValues("vendor_unsettled"))
	RecordRejection("vendor_unsettled")
	RecordRejection("vendor_unsettled")
	assert.Equal(t, before+2, testutil.ToFloat64(SettlementRejections.WithLabelValues("vendor_unsettled")))
}
