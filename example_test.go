package contactform_test

import (
	"fmt"

	"github.com/goliatone/go-contactform"
)

func ExampleNewEngine() {
	form, err := contactform.DefaultForm()
	if err != nil {
		panic(err)
	}

	e := contactform.NewEngine(form)
	e.SetField("firstName", "test")
	fmt.Println(e.Errors()["firstName"])

	e.SetField("firstName", "Jamaria")
	e.SetField("lastName", "Sims")
	e.SetField("email", "JamariaxSims@gmail.com")
	fmt.Println(e.Submit())

	snap, _ := e.Snapshot()
	fmt.Printf("%q\n", snap.Value("message"))
	// Output:
	// firstName must have at least 5 characters.
	// true
	// ""
}

func ExampleNewEngine_validateAll() {
	form, _ := contactform.DefaultForm()
	e := contactform.NewEngine(form)

	for _, fe := range e.ValidateAll().Ordered(form) {
		fmt.Println(fe.Message)
	}
	// Output:
	// firstName is a required field.
	// lastName is a required field.
	// email must be a valid email address.
}
