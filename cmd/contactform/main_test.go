package main

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/goliatone/go-contactform/internal/config"
	"github.com/goliatone/go-contactform/pkg/render"
)

func TestParseValues(t *testing.T) {
	values, err := parseValues([]string{"firstName=Jamaria", "message=a=b", " email =x@y.io"})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"firstName": "Jamaria",
		"message":   "a=b",
		"email":     "x@y.io",
	}, values)

	_, err = parseValues([]string{"firstName"})
	assert.Error(t, err)
	_, err = parseValues([]string{"=value"})
	assert.Error(t, err)
}

func testEnv(t *testing.T) *Env {
	t.Helper()
	cfg := config.DefaultConfig()
	return &Env{Config: &cfg}
}

func TestRenderCmd_SubmitEchoesValues(t *testing.T) {
	var out bytes.Buffer
	app := NewRenderCmd(testEnv(t)).Register(&cli.Command{Name: "contactform", Writer: &out})

	err := app.Run(context.Background(), []string{
		"contactform", "render",
		"--value", "firstName=Jamaria",
		"--value", "lastName=Sims",
		"--value", "email=JamariaxSims@gmail.com",
		"--submit",
	})
	require.NoError(t, err)
	assert.Contains(t, out.String(), `data-testid="firstnameDisplay">Jamaria</span>`)
	assert.NotContains(t, out.String(), `data-testid="error"`)
}

func TestRenderCmd_JSONShowsErrors(t *testing.T) {
	var out bytes.Buffer
	app := NewRenderCmd(testEnv(t)).Register(&cli.Command{Name: "contactform", Writer: &out})

	err := app.Run(context.Background(), []string{"contactform", "render", "--renderer", "json", "--submit"})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "firstName is a required field.")
	assert.Contains(t, out.String(), "email must be a valid email address.")
}

func TestRenderCmd_ValueKeepsCommas(t *testing.T) {
	var out bytes.Buffer
	app := NewRenderCmd(testEnv(t)).Register(&cli.Command{Name: "contactform", Writer: &out})

	err := app.Run(context.Background(), []string{
		"contactform", "render", "--renderer", "json",
		"--value", "firstName=Jamaria",
		"--value", "lastName=Sims",
		"--value", "email=JamariaxSims@gmail.com",
		"--value", "message=Hi, there,b=c",
		"--submit",
	})
	require.NoError(t, err)

	var view render.FormView
	require.NoError(t, json.Unmarshal(out.Bytes(), &view))
	assert.True(t, view.Submitted)
	assert.Empty(t, view.Errors)

	echoed := map[string]string{}
	for _, entry := range view.Echo {
		echoed[entry.Name] = entry.Value
	}
	assert.Equal(t, "Hi, there,b=c", echoed["message"])
}

func TestOpenAPICmd_Export(t *testing.T) {
	var out bytes.Buffer
	app := NewOpenAPICmd(testEnv(t)).Register(&cli.Command{Name: "contactform", Writer: &out})

	err := app.Run(context.Background(), []string{"contactform", "openapi", "export"})
	require.NoError(t, err)
	assert.Contains(t, out.String(), `"ContactSubmission"`)
	assert.Contains(t, out.String(), `"/api/submit"`)
}

func TestFlagsApply(t *testing.T) {
	flags := &Flags{}
	cfg := config.DefaultConfig()
	app := &cli.Command{
		Name: "contactform",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "log-level", Destination: &flags.LogLevel},
			&cli.StringFlag{Name: "form", Destination: &flags.FormID},
		},
		Action: func(_ context.Context, c *cli.Command) error {
			flags.apply(c, &cfg)
			return nil
		},
	}

	require.NoError(t, app.Run(context.Background(), []string{"contactform", "--log-level", "debug"}))
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "contact", cfg.FormID)
}
