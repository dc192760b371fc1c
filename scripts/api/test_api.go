// Minimal end‑to‑end integration test for the rescue API.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"mime/multipart"
	"net/http"
	"os"

	"github.com/google/uuid"
)

var baseURL = getenv("API_URL", "http://localhost:8080")

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func main() {
	checkHealth()

	email := fmt.Sprintf("smoke-%s@example.com", uuid.NewString()[:8])
	chatID := postChatMessage(email)
	checkChatListed(chatID)

	subID := submitGiftCard()
	checkSubmissionPending(subID)
	verifySubmission(subID)

	replacePaymentMethods()
	checkPaymentMethods()

	animalID := createAnimal()
	checkAnimalListed(animalID)
	deleteAnimal(animalID)

	fmt.Println("✓ all endpoints passed")
}

// ----------------------------- health

func checkHealth() {
	var resp struct{ Status string }
	doJSON("GET", "/health", nil, &resp, http.StatusOK)
	if resp.Status != "up" {
		log.Fatalf("health: status %q", resp.Status)
	}
}

// ----------------------------- chat

func postChatMessage(email string) string {
	var resp struct{ ID string }
	doJSON("POST", "/chat", map[string]any{
		"name":    "Smoke Test",
		"email":   email,
		"message": "integration-test " + uuid.NewString(),
	}, &resp, http.StatusOK)
	if resp.ID == "" {
		log.Fatal("chat: empty conversation id")
	}
	return resp.ID
}

func checkChatListed(want string) {
	var chats []struct{ ID string }
	doJSON("GET", "/chats", nil, &chats, http.StatusOK)
	for _, c := range chats {
		if c.ID == want {
			return
		}
	}
	log.Fatal("chats: created conversation not found")
}

// ----------------------------- gift cards

func submitGiftCard() string {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range map[string]string{
		"name":          "Smoke Test",
		"email":         "smoke@example.com",
		"amount":        "25.50",
		"paymentMethod": "PayPal",
		"note":          "integration-test",
	} {
		if err := w.WriteField(k, v); err != nil {
			log.Fatalf("giftcard form: %v", err)
		}
	}
	part, err := w.CreateFormFile("giftCardImage", "proof.png")
	if err != nil {
		log.Fatalf("giftcard form: %v", err)
	}
	part.Write([]byte("not a real png but the API does not care"))
	w.Close()

	var resp struct {
		Success    bool
		Submission struct{ ID string }
	}
	doMultipart("POST", "/submit-giftcard", &buf, w.FormDataContentType(), &resp, http.StatusOK)
	if !resp.Success || resp.Submission.ID == "" {
		log.Fatal("giftcard: submission not accepted")
	}
	return resp.Submission.ID
}

func checkSubmissionPending(want string) {
	var subs []struct{ ID, Status string }
	doJSON("GET", "/giftcard-submissions", nil, &subs, http.StatusOK)
	for _, s := range subs {
		if s.ID == want {
			if s.Status != "pending" {
				log.Fatalf("giftcard: want pending got %s", s.Status)
			}
			return
		}
	}
	log.Fatal("giftcard: submission not listed")
}

func verifySubmission(id string) {
	var resp struct{ Status string }
	doJSON("PUT", "/giftcard-submissions/"+id, map[string]any{
		"status": "verified",
	}, &resp, http.StatusOK)
	if resp.Status != "verified" {
		log.Fatalf("giftcard: want verified got %s", resp.Status)
	}

	// terminal states reject further changes
	doJSON("PUT", "/giftcard-submissions/"+id, map[string]any{
		"status": "rejected",
	}, nil, http.StatusConflict)
}

// ----------------------------- settings

func replacePaymentMethods() {
	doJSON("POST", "/settings", map[string]any{
		"paymentMethods": []map[string]any{
			{"label": "PayPal", "details": "donate@example.com"},
			{"label": "Gift cards", "details": "Amazon or Steam"},
		},
	}, nil, http.StatusOK)
}

func checkPaymentMethods() {
	var resp struct {
		PaymentMethods []struct{ Label string }
	}
	doJSON("GET", "/settings", nil, &resp, http.StatusOK)
	if len(resp.PaymentMethods) != 2 {
		log.Fatalf("settings: want 2 methods got %d", len(resp.PaymentMethods))
	}
}

// ----------------------------- animals

func createAnimal() string {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	w.WriteField("name", "Smoke Dog")
	w.WriteField("species", "dog")
	w.Close()

	var resp struct{ ID string }
	doMultipart("POST", "/animals", &buf, w.FormDataContentType(), &resp, http.StatusOK)
	if resp.ID == "" {
		log.Fatal("animals: empty id")
	}
	return resp.ID
}

func checkAnimalListed(want string) {
	var animals []struct{ ID string }
	doJSON("GET", "/animals", nil, &animals, http.StatusOK)
	for _, a := range animals {
		if a.ID == want {
			return
		}
	}
	log.Fatal("animals: created animal not found")
}

func deleteAnimal(id string) {
	doJSON("DELETE", "/animals/"+id, nil, nil, http.StatusOK)
}

// ----------------------------- helpers

func doJSON(method, path string, body, out any, want int) {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			log.Fatalf("%s %s encode: %v", method, path, err)
		}
	}
	doReq(method, path, &buf, "application/json", out, want)
}

func doMultipart(method, path string, body *bytes.Buffer, contentType string, out any, want int) {
	doReq(method, path, body, contentType, out, want)
}

func doReq(method, path string, body *bytes.Buffer, contentType string, out any, want int) {
	req, _ := http.NewRequest(method, baseURL+path, body)
	req.Header.Set("Content-Type", contentType)
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		log.Fatalf("%s %s: %v", method, path, err)
	}
	defer res.Body.Close()
	if res.StatusCode != want {
		log.Fatalf("%s %s: want %d got %d", method, path, want, res.StatusCode)
	}
	if out != nil {
		if err := json.NewDecoder(res.Body).Decode(out); err != nil {
			log.Fatalf("%s %s decode: %v", method, path, err)
		}
	}
}
