package testsupport_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-contactform/pkg/testsupport"
)

const page = `<section>
  <h1>Contact Form</h1>
  <form>
    <input type="text" name="firstName" placeholder="Edd" value="Jamaria">
    <textarea name="message">hello
there</textarea>
    <p data-testid="error">lastName is a required field.</p>
    <p data-testid="error">email must be a valid email address.</p>
    <button type="submit">Submit</button>
  </form>
  <p><strong>First Name</strong> <span data-testid="firstnameDisplay">Jamaria</span></p>
</section>`

func TestDocumentQueries(t *testing.T) {
	doc := testsupport.MustParseHTML(t, []byte(page))

	input, ok := doc.ByPlaceholder("Edd")
	if !ok || input.Attr("name") != "firstName" || input.Value() != "Jamaria" {
		t.Fatalf("placeholder lookup failed: %+v", input)
	}

	if _, ok := doc.ByRole("button", "Submit"); !ok {
		t.Fatalf("submit button not found")
	}
	if _, ok := doc.ByRole("heading", "Contact Form"); !ok {
		t.Fatalf("heading not found")
	}

	textboxes := doc.AllByRole("textbox")
	if len(textboxes) != 2 {
		t.Fatalf("expected 2 textboxes, got %d", len(textboxes))
	}
	if textboxes[1].Value() != "hello\nthere" {
		t.Fatalf("textarea value mismatch: %q", textboxes[1].Value())
	}

	want := []string{"lastName is a required field.", "email must be a valid email address."}
	if diff := cmp.Diff(want, testsupport.Texts(doc.AllByTestID("error"))); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}

	echo, ok := doc.QueryByText("Jamaria")
	if !ok || echo.Attr("data-testid") != "firstnameDisplay" {
		t.Fatalf("text lookup failed")
	}
	if _, ok := doc.QueryByText("Nobody"); ok {
		t.Fatalf("unexpected match")
	}
	if _, ok := doc.ByTestID("lastnameDisplay"); ok {
		t.Fatalf("unexpected echo node")
	}
}
