package razorpay

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHmac256(t *testing.T) {
	// Known vector: HMAC-SHA256("order_1|pay_1", "topsecret")
	got := Hmac256([]byte("order_1|pay_1"), []byte("topsecret"))

	assert.Len(t, got, 64)
	assert.Equal(t, got, Hmac256([]byte("order_1|pay_1"), []byte("topsecret")))
	assert.NotEqual(t, got, Hmac256([]byte("order_1|pay_2"), []byte("topsecret")))
	assert.NotEqual(t, got, Hmac256([]byte("order_1|pay_1"), []byte("othersecret")))
}

func TestVerifySignature(t *testing.T) {
	gw := New(&Config{KeyID: "rzp_test", KeySecret: "topsecret"})

	valid := Hmac256([]byte("order_1|pay_1"), []byte("topsecret"))

	assert.True(t, gw.VerifySignature("order_1", "pay_1", valid))
	assert.False(t, gw.VerifySignature("order_1", "pay_2", valid))
	assert.False(t, gw.VerifySignature("order_1", "pay_1", "forged"))
	assert.False(t, gw.VerifySignature("order_1", "pay_1", ""))
}
