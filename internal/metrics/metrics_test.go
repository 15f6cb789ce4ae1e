package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordAPIRequest(t *testing.T) {
	before := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/tags/", "200"))

	RecordAPIRequest("GET", "/api/tags/", 200, 15*time.Millisecond)

	after := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/tags/", "200"))
	assert.Equal(t, before+1, after)
}

func TestRecordSocialToggle(t *testing.T) {
	ok := SocialToggles.WithLabelValues("favorite", "add", "ok")
	rejected := SocialToggles.WithLabelValues("favorite", "add", "rejected")
	okBefore, rejectedBefore := testutil.ToFloat64(ok), testutil.ToFloat64(rejected)

	RecordSocialToggle("favorite", "add", nil)
	RecordSocialToggle("favorite", "add", errors.New("duplicate"))

	assert.Equal(t, okBefore+1, testutil.ToFloat64(ok))
	assert.Equal(t, rejectedBefore+1, testutil.ToFloat64(rejected))
}

func TestRecordShoppingListDownload(t *testing.T) {
	before := testutil.ToFloat64(ShoppingListDownloads)

	RecordShoppingListDownload(3)

	assert.Equal(t, before+1, testutil.ToFloat64(ShoppingListDownloads))
}
