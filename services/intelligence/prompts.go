package ai

import (
	"encoding/json"
	"fmt"

	"roomie/models"
)

// Greeting is the canonical first bot message for a new session.
func Greeting(hotelName string) string {
	return fmt.Sprintf("Hello! I'm Roomie, the hotel booking assistant for %s. "+
		"I can help you with booking, modifying, or canceling a reservation. "+
		"How can I assist you today?", hotelName)
}

// FallbackResponse is surfaced when extraction produced no usable candidate.
const FallbackResponse = "I'm sorry, I didn't understand that. Could you please rephrase your last message?"

// correctionInstruction is appended to the prompt on each extraction retry.
const correctionInstruction = "Your previous answer was not valid JSON matching the schema. " +
	"Return ONLY the pure JSON object, with no code fences, commentary or extra text."

const bookingStatePrompt = `You are a hotel booking assistant. Based on the current booking state, the conversation history and the guest's latest message, update the booking state.

The updated booking state must include the following keys:
- "last_intent": one of "booking", "modify", "cancel", "confirm", "reset", "smalltalk" — the intent of the guest's latest message.
- "status": one of "draft", "pending", "confirmed".
- "full_name": the guest's full name (string) or null if not provided.
- "check_in_date": the check-in date (string in YYYY-MM-DD) or null.
- "check_out_date": the check-out date (string in YYYY-MM-DD) or null.
- "num_guests": the number of guests (integer, at most %d) or null.
- "payment_method": one of "cash", "card", "credit", "paypal", "bitcoin", or null.
- "breakfast_included": "yes" or "no", or null if not yet answered.
- "booking_number": the reservation number exactly as the guest stated it, or null. NEVER invent one.
- "language": the language the guest is writing in, or null.
- "response": a polite message asking for the next missing piece of information, or confirming that all information is complete.

Keep every value from the current state unless the latest message explicitly supplies a new one.
Normalize all dates to YYYY-MM-DD. If the guest asks for more than %d guests, use %d.
Process the requests to the guest one after another in the given sequence. Do not mention or ask for multiple fields at the same time.
When you request the next field, do not confirm the last field name that was given but occasionally thank the guest for the input and
vary slightly with the sentence to describe the request to make it a bit more interesting.
When date formats are requested, briefly attach the format (YYYY-MM-DD).

Current booking state:
%s

Conversation history:
---
%s
---

Guest's latest message:
%s

Return ONLY valid and pure JSON data matching the schema above.
NEVER wrap this into code tags, just return the pure JSON data!`

// buildBookingStatePrompt renders the extraction prompt for one turn.
func buildBookingStatePrompt(transcript string, current models.BookingContext, latestInput string, capacity int) string {
	fields, err := json.Marshal(current)
	if err != nil {
		fields = []byte("{}")
	}
	return fmt.Sprintf(bookingStatePrompt, capacity, capacity, capacity, fields, transcript, latestInput)
}
