package email

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSES struct {
	inputs []*sesv2.SendEmailInput
	err    error
}

func (f *fakeSES) SendEmail(ctx context.Context, params *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error) {
	f.inputs = append(f.inputs, params)
	if f.err != nil {
		return nil, f.err
	}
	return &sesv2.SendEmailOutput{MessageId: aws.String("msg-1")}, nil
}

func TestSESSenderSend(t *testing.T) {
	fake := &fakeSES{}
	sender := newSESSenderWithAPI(fake, "league@example.com")

	err := sender.Send(context.Background(), "teacher@example.com", "Reset code", "123456")
	require.NoError(t, err)
	require.Len(t, fake.inputs, 1)

	input := fake.inputs[0]
	assert.Equal(t, []string{"teacher@example.com"}, input.Destination.ToAddresses)
	assert.Equal(t, "league@example.com", aws.ToString(input.FromEmailAddress))
	assert.Equal(t, "Reset code", aws.ToString(input.Content.Simple.Subject.Data))
	assert.Equal(t, "123456", aws.ToString(input.Content.Simple.Body.Text.Data))
}

func TestSESSenderErrors(t *testing.T) {
	fake := &fakeSES{err: errors.New("throttled")}
	sender := newSESSenderWithAPI(fake, "league@example.com")

	assert.Error(t, sender.Send(context.Background(), "", "s", "b"))
	assert.Empty(t, fake.inputs)

	err := sender.Send(context.Background(), "teacher@example.com", "s", "b")
	assert.ErrorContains(t, err, "throttled")
}

func TestNewSESSenderRequiresCredentials(t *testing.T) {
	_, err := NewSESSender(context.Background(), "", "", "eu-west-1", "league@example.com")
	assert.Error(t, err)

	_, err = NewSESSender(context.Background(), "id", "secret", "eu-west-1", "")
	assert.Error(t, err)
}

func TestLogSender(t *testing.T) {
	sender := NewLogSender()
	assert.NoError(t, sender.Send(context.Background(), "teacher@example.com", "s", "b"))
	assert.Error(t, sender.Send(context.Background(), "", "s", "b"))
}
