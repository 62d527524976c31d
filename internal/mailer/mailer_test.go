package mailer

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testMessage() Message {
	return Message{
		FromAddress:    "info@paladinopropiedades.com.ar",
		FromName:       "Web Paladino Propiedades",
		ToAddress:      "ventas@paladinopropiedades.com.ar",
		ToName:         "Paladino Propiedades",
		ReplyToAddress: "juan@example.com",
		ReplyToName:    "Juan",
		Subject:        "Nueva consulta desde la web",
		HTMLBody:       "<p>hola</p>",
		TextBody:       "hola",
	}
}

func TestZeptoMailSend(t *testing.T) {
	var got zeptoRequest
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"data":[{"code":"EM_104","message":"Email request received"}]}`))
	}))
	defer srv.Close()

	z := NewZeptoMail(srv.URL, "Zoho-enczapikey abc", 5*time.Second)
	require.NoError(t, z.Send(context.Background(), testMessage()))

	assert.Equal(t, "Zoho-enczapikey abc", auth)
	assert.Equal(t, "info@paladinopropiedades.com.ar", got.From.Address)
	assert.Equal(t, "Web Paladino Propiedades", got.From.Name)
	require.Len(t, got.To, 1)
	assert.Equal(t, "ventas@paladinopropiedades.com.ar", got.To[0].EmailAddress.Address)
	require.Len(t, got.ReplyTo, 1)
	assert.Equal(t, "juan@example.com", got.ReplyTo[0].Address)
	assert.Equal(t, "<p>hola</p>", got.HTMLBody)
	assert.Equal(t, "hola", got.TextBody)
}

func TestZeptoMailErrorStatus(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"code":"TM_102","message":"Invalid API Token found"}}`))
	}))
	defer srv.Close()

	err := NewZeptoMail(srv.URL, "bad", 5*time.Second).Send(context.Background(), testMessage())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
	assert.Contains(t, err.Error(), "Invalid API Token found")
	assert.Equal(t, 1, calls)
}

func TestZeptoMailMissingToken(t *testing.T) {
	err := NewZeptoMail("", "", 0).Send(context.Background(), testMessage())
	assert.ErrorIs(t, err, ErrMissingCredentials)
}

type fakeSES struct {
	input *ses.SendEmailInput
	err   error
}

func (f *fakeSES) SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
	f.input = params
	if f.err != nil {
		return nil, f.err
	}
	return &ses.SendEmailOutput{MessageId: aws.String("msg-1")}, nil
}

func TestSESSend(t *testing.T) {
	fake := &fakeSES{}
	s := NewSESWithClient(fake)
	require.NoError(t, s.Send(context.Background(), testMessage()))

	require.NotNil(t, fake.input)
	assert.Equal(t, `"Web Paladino Propiedades" <info@paladinopropiedades.com.ar>`, aws.ToString(fake.input.Source))
	assert.Equal(t, []string{`"Paladino Propiedades" <ventas@paladinopropiedades.com.ar>`}, fake.input.Destination.ToAddresses)
	assert.Equal(t, []string{`"Juan" <juan@example.com>`}, fake.input.ReplyToAddresses)
	assert.Equal(t, "Nueva consulta desde la web", aws.ToString(fake.input.Message.Subject.Data))
	assert.Equal(t, "<p>hola</p>", aws.ToString(fake.input.Message.Body.Html.Data))
	assert.Equal(t, "ses", s.Name())
}

func TestSESSendError(t *testing.T) {
	s := NewSESWithClient(&fakeSES{err: errors.New("throttled")})
	err := s.Send(context.Background(), testMessage())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "throttled")
}
