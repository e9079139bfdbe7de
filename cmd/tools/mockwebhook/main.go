package main

import (
	"bytes"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"time"
)

// Sends a Stripe-signed webhook event to a local server, so the endpoint can
// be exercised without the Stripe CLI.
func main() {
	url := flag.String("url", "http://localhost:8080/webhooks/stripe", "Webhook URL")
	secret := flag.String("secret", os.Getenv("STRIPE_WEBHOOK_SECRET"), "Webhook signing secret")
	eventID := flag.String("event-id", "evt_"+randomHex(12), "Event ID")
	eventType := flag.String("type", "checkout.session.completed", "Event type (checkout.session.completed, payment_intent.succeeded, charge.refunded)")
	paymentIntent := flag.String("pi", "pi_"+randomHex(12), "Payment intent ID")
	email := flag.String("email", "buyer@example.com", "Customer email")
	amount := flag.Int64("amount", 49900, "Amount total in cents")
	currency := flag.String("currency", "aud", "Currency")
	dryRun := flag.Bool("dry-run", false, "Only print the signed request, don't send")

	flag.Parse()

	if *secret == "" {
		fmt.Fprintln(os.Stderr, "Error: secret not provided and STRIPE_WEBHOOK_SECRET not set")
		os.Exit(1)
	}

	object := map[string]any{
		"id":           "cs_" + randomHex(12),
		"amount_total": *amount,
		"currency":     *currency,
		"customer_details": map[string]any{
			"email": *email,
		},
		"payment_intent": *paymentIntent,
	}
	switch *eventType {
	case "payment_intent.succeeded":
		object = map[string]any{
			"id":            *paymentIntent,
			"amount":        *amount,
			"currency":      *currency,
			"receipt_email": *email,
		}
	case "charge.refunded":
		object = map[string]any{
			"id":             "ch_" + randomHex(12),
			"payment_intent": *paymentIntent,
		}
	}

	body, err := json.Marshal(map[string]any{
		"id":   *eventID,
		"type": *eventType,
		"data": map[string]any{"object": object},
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: marshal payload: %v\n", err)
		os.Exit(1)
	}

	ts := time.Now().Unix()
	sig := sign(*secret, ts, body)
	header := "t=" + strconv.FormatInt(ts, 10) + ",v1=" + sig

	if *dryRun {
		fmt.Printf("Stripe-Signature: %s\n%s\n", header, body)
		return
	}

	req, err := http.NewRequest(http.MethodPost, *url, bytes.NewReader(body))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: build request: %v\n", err)
		os.Exit(1)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Stripe-Signature", header)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: send request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	fmt.Printf("%s\n%s\n", resp.Status, respBody)
}

// Stripe signs "<timestamp>.<payload>" with HMAC-SHA256.
func sign(secret string, ts int64, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.", ts)
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func randomHex(nBytes int) string {
	b := make([]byte, nBytes)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
