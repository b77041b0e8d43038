package notify

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/gophauth/internal/logging"
	"github.com/dmitrijs2005/gophauth/internal/server/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"
)

var testMsg = RegistrationEmail{AppName: "App", Recipient: "a@x.com", Link: "http://front/user/42/"}

func TestSMTPSender_Send(t *testing.T) {
	s := NewSMTPSender("smtp.example", 465, "u", "p", "noreply@example")

	var sent []*gomail.Message
	s.dialAndSend = func(m ...*gomail.Message) error {
		sent = append(sent, m...)
		return nil
	}

	require.NoError(t, s.Send(context.Background(), testMsg))
	require.Len(t, sent, 1)
	assert.Equal(t, []string{"noreply@example"}, sent[0].GetHeader("From"))
	assert.Equal(t, []string{"a@x.com"}, sent[0].GetHeader("To"))
	assert.Equal(t, []string{"Finish registration on App"}, sent[0].GetHeader("Subject"))
}

func TestSMTPSender_Error(t *testing.T) {
	s := NewSMTPSender("smtp.example", 465, "u", "p", "noreply@example")
	s.dialAndSend = func(m ...*gomail.Message) error { return errors.New("connection refused") }

	err := s.Send(context.Background(), testMsg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestSMTPSender_CanceledContext(t *testing.T) {
	s := NewSMTPSender("smtp.example", 465, "u", "p", "noreply@example")
	called := false
	s.dialAndSend = func(m ...*gomail.Message) error { called = true; return nil }

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, s.Send(ctx, testMsg), context.Canceled)
	assert.False(t, called)
}

type fakePutter struct {
	inputs []*s3.PutObjectInput
	bodies []string
	err    error
}

func (f *fakePutter) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	b, _ := io.ReadAll(in.Body)
	f.inputs = append(f.inputs, in)
	f.bodies = append(f.bodies, string(b))
	return &s3.PutObjectOutput{}, nil
}

func withS3Client(t *testing.T, p objectPutter, err error) {
	t.Helper()
	orig := newS3Client
	t.Cleanup(func() { newS3Client = orig })
	newS3Client = func(ctx context.Context, cfg *config.Config) (objectPutter, error) {
		return p, err
	}
}

func TestS3DropSender_Send(t *testing.T) {
	fp := &fakePutter{}
	withS3Client(t, fp, nil)

	cfg := &config.Config{}
	cfg.LoadDefaults()

	s, err := NewS3DropSender(context.Background(), cfg)
	require.NoError(t, err)
	s.now = func() time.Time { return time.Date(2024, 3, 9, 12, 0, 0, 0, time.UTC) }

	require.NoError(t, s.Send(context.Background(), testMsg))
	require.Len(t, fp.inputs, 1)

	in := fp.inputs[0]
	assert.Equal(t, "maildrop", *in.Bucket)
	assert.True(t, strings.HasPrefix(*in.Key, "outbox/2024/03/09/"), *in.Key)
	assert.True(t, strings.HasSuffix(*in.Key, ".eml"), *in.Key)
	assert.Equal(t, "message/rfc822", *in.ContentType)

	assert.Contains(t, fp.bodies[0], "Subject: Finish registration on App")
	assert.Contains(t, fp.bodies[0], "To: a@x.com")
	assert.Contains(t, fp.bodies[0], "multipart/alternative")
}

func TestS3DropSender_PutError(t *testing.T) {
	withS3Client(t, &fakePutter{err: errors.New("bucket gone")}, nil)

	cfg := &config.Config{}
	cfg.LoadDefaults()

	s, err := NewS3DropSender(context.Background(), cfg)
	require.NoError(t, err)

	err = s.Send(context.Background(), testMsg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bucket gone")
}

func TestNewS3DropSender_ClientError(t *testing.T) {
	withS3Client(t, nil, errors.New("no creds"))

	cfg := &config.Config{}
	cfg.LoadDefaults()

	_, err := NewS3DropSender(context.Background(), cfg)
	assert.Error(t, err)
}

func TestLogSender_Send(t *testing.T) {
	var buf bytes.Buffer
	s := NewLogSender(logging.NewJSONLogger(&buf, slog.LevelDebug))

	require.NoError(t, s.Send(context.Background(), testMsg))
	assert.Contains(t, buf.String(), `"to":"a@x.com"`)
	assert.Contains(t, buf.String(), `"subject":"Finish registration on App"`)
	assert.Contains(t, buf.String(), `"module":"notify"`)
}

func TestNewSender(t *testing.T) {
	withS3Client(t, &fakePutter{}, nil)

	cases := map[string]any{
		config.MailTransportLog:  &LogSender{},
		config.MailTransportSMTP: &SMTPSender{},
		config.MailTransportS3:   &S3DropSender{},
	}

	for transport, want := range cases {
		t.Run(transport, func(t *testing.T) {
			cfg := &config.Config{}
			cfg.LoadDefaults()
			cfg.MailTransport = transport

			s, err := NewSender(context.Background(), cfg, logging.Nop())
			require.NoError(t, err)
			assert.IsType(t, want, s)
		})
	}

	cfg := &config.Config{MailTransport: "pigeon"}
	_, err := NewSender(context.Background(), cfg, logging.Nop())
	assert.Error(t, err)
}
