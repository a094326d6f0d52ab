package dynamo

import (
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildUpdateExpr_SingleField(t *testing.T) {
	ue, err := buildUpdateExpr(map[string]interface{}{"name": "alice"})
	require.NoError(t, err)
	assert.Equal(t, "SET #f0 = :v0", ue.Expr)
	assert.Equal(t, map[string]string{"#f0": "name"}, ue.Names)
	_, ok := ue.Values[":v0"]
	assert.True(t, ok)
}

func TestBuildUpdateExpr_MultipleFields_Deterministic(t *testing.T) {
	updates := map[string]interface{}{
		"otp_code":         "123456",
		"otp_expires_at":   "2025-06-01T12:10:00Z",
		"last_otp_sent_at": "2025-06-01T12:00:00Z",
	}
	// Call twice to verify determinism.
	ue1, err := buildUpdateExpr(updates)
	require.NoError(t, err)
	ue2, err := buildUpdateExpr(updates)
	require.NoError(t, err)

	assert.Equal(t, ue1.Expr, ue2.Expr)

	// Keys must be sorted: last_otp_sent_at < otp_code < otp_expires_at
	assert.Equal(t, "last_otp_sent_at", ue1.Names["#f0"])
	assert.Equal(t, "otp_code", ue1.Names["#f1"])
	assert.Equal(t, "otp_expires_at", ue1.Names["#f2"])
	assert.Equal(t, "SET #f0 = :v0, #f1 = :v1, #f2 = :v2", ue1.Expr)
}

func TestBuildUpdateExpr_NilValueMarshalsToNull(t *testing.T) {
	ue, err := buildUpdateExpr(map[string]interface{}{"otp_code": nil})
	require.NoError(t, err)
	av, ok := ue.Values[":v0"]
	require.True(t, ok)
	nullVal, isNull := av.(*types.AttributeValueMemberNULL)
	require.True(t, isNull)
	assert.True(t, nullVal.Value)
}

func TestBuildUpdateExpr_TimeValueMarshalsNatively(t *testing.T) {
	ts := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	ue, err := buildUpdateExpr(map[string]interface{}{"updated_at": ts})
	require.NoError(t, err)

	// Timestamps go through attributevalue like every other field, so they
	// round-trip back into a time.Time on read.
	s, ok := ue.Values[":v0"].(*types.AttributeValueMemberS)
	require.True(t, ok)
	parsed, err := time.Parse(time.RFC3339Nano, s.Value)
	require.NoError(t, err)
	assert.True(t, ts.Equal(parsed))
}

func TestBuildUpdateExpr_EmptyMap_ReturnsError(t *testing.T) {
	_, err := buildUpdateExpr(map[string]interface{}{})
	assert.ErrorContains(t, err, "no fields to update")
}
