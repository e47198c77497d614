// Package ses provides eligibility digest emails via AWS SES
package ses

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"go.uber.org/zap"

	appConfig "scheme-eligibility-engine/internal/config"
	"scheme-eligibility-engine/internal/models"
	"scheme-eligibility-engine/internal/utils"
)

// Service handles SES email operations
type Service struct {
	client    *ses.Client
	fromEmail string
}

// EmailParams represents parameters for sending an email
type EmailParams struct {
	To       string
	Subject  string
	HTMLBody string
	TextBody string
	ReplyTo  string
}

// DigestParams contains data for an eligibility digest email
type DigestParams struct {
	UserName   string
	UserEmail  string
	TopSchemes []SchemeInfo
	PortalURL  string
}

// SchemeInfo contains info about a single scheme for the digest
type SchemeInfo struct {
	SchemeName       string
	Category         string
	EligibilityScore float64
}

// SendEmailResult contains the result of sending an email
type SendEmailResult struct {
	MessageID string
	SentAt    time.Time
}

// NewService creates a new SES service
func NewService(ctx context.Context) (*Service, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	appCfg, err := appConfig.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load app config: %w", err)
	}

	client := ses.NewFromConfig(cfg)

	return &Service{
		client:    client,
		fromEmail: appCfg.SESSenderEmail,
	}, nil
}

// SendEmail sends a basic email
func (s *Service) SendEmail(ctx context.Context, params EmailParams) (*SendEmailResult, error) {
	input := &ses.SendEmailInput{
		Source: aws.String(s.fromEmail),
		Destination: &types.Destination{
			ToAddresses: []string{params.To},
		},
		Message: &types.Message{
			Subject: &types.Content{
				Data:    aws.String(params.Subject),
				Charset: aws.String("UTF-8"),
			},
			Body: &types.Body{},
		},
	}

	if params.HTMLBody != "" {
		input.Message.Body.Html = &types.Content{
			Data:    aws.String(params.HTMLBody),
			Charset: aws.String("UTF-8"),
		}
	}

	if params.TextBody != "" {
		input.Message.Body.Text = &types.Content{
			Data:    aws.String(params.TextBody),
			Charset: aws.String("UTF-8"),
		}
	}

	if params.ReplyTo != "" {
		input.ReplyToAddresses = []string{params.ReplyTo}
	}

	result, err := s.client.SendEmail(ctx, input)
	if err != nil {
		utils.Logger.Error("Failed to send email",
			zap.String("to", params.To),
			zap.String("subject", params.Subject),
			zap.Error(err),
		)
		return nil, fmt.Errorf("failed to send email: %w", err)
	}

	utils.Logger.Info("Email sent successfully",
		zap.String("to", params.To),
		zap.String("subject", params.Subject),
		zap.String("messageId", *result.MessageId),
	)

	return &SendEmailResult{
		MessageID: *result.MessageId,
		SentAt:    time.Now(),
	}, nil
}

// SendEligibilityDigest sends a digest of the user's best-matching schemes
func (s *Service) SendEligibilityDigest(ctx context.Context, params DigestParams) (*SendEmailResult, error) {
	htmlBody, err := s.renderDigestHTML(params)
	if err != nil {
		return nil, fmt.Errorf("failed to render email template: %w", err)
	}

	textBody := s.renderDigestText(params)

	subject := fmt.Sprintf("%s, %d schemes match your profile", params.UserName, len(params.TopSchemes))

	return s.SendEmail(ctx, EmailParams{
		To:       params.UserEmail,
		Subject:  subject,
		HTMLBody: htmlBody,
		TextBody: textBody,
	})
}

// BuildDigestParams creates digest params from ranked results.
func BuildDigestParams(userName, userEmail string, results []models.EligibilityResult, portalURL string, limit int) DigestParams {
	if limit <= 0 || limit > len(results) {
		limit = len(results)
	}

	topSchemes := make([]SchemeInfo, 0, limit)
	for _, result := range results[:limit] {
		topSchemes = append(topSchemes, SchemeInfo{
			SchemeName:       result.SchemeName,
			Category:         result.Category,
			EligibilityScore: result.EligibilityScore,
		})
	}

	return DigestParams{
		UserName:   userName,
		UserEmail:  userEmail,
		TopSchemes: topSchemes,
		PortalURL:  portalURL,
	}
}

// renderDigestHTML renders the HTML email template
func (s *Service) renderDigestHTML(params DigestParams) (string, error) {
	tmpl := `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <style>
        body { font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background: #1a5276; color: white; padding: 30px; border-radius: 10px 10px 0 0; text-align: center; }
        .header h1 { margin: 0; font-size: 24px; }
        .content { background: #f9f9f9; padding: 30px; border-radius: 0 0 10px 10px; }
        .scheme-card { background: white; border-radius: 8px; padding: 20px; margin: 15px 0; box-shadow: 0 2px 4px rgba(0,0,0,0.1); }
        .scheme-card h3 { margin: 0 0 10px 0; color: #1a5276; }
        .scheme-card .category { color: #666; font-size: 14px; margin-bottom: 10px; }
        .score-badge { display: inline-block; background: #28a745; color: white; padding: 5px 12px; border-radius: 20px; font-weight: bold; }
        .cta-button { display: inline-block; background: #1a5276; color: white; padding: 15px 30px; text-decoration: none; border-radius: 8px; font-weight: bold; margin-top: 20px; }
        .footer { text-align: center; margin-top: 30px; color: #999; font-size: 12px; }
    </style>
</head>
<body>
    <div class="header">
        <h1>Schemes That Match Your Profile</h1>
        <p>Hi {{.UserName}}, {{len .TopSchemes}} government schemes match your eligibility</p>
    </div>
    <div class="content">
        <p>Based on your profile, these schemes look like the best fit:</p>

        {{range .TopSchemes}}
        <div class="scheme-card">
            <h3>{{.SchemeName}}</h3>
            {{if .Category}}<p class="category">{{.Category}}</p>{{end}}
            <span class="score-badge">{{printf "%.2f" .EligibilityScore}}% match</span>
        </div>
        {{end}}

        {{if .PortalURL}}
        <div style="text-align: center;">
            <a href="{{.PortalURL}}" class="cta-button">View All Schemes</a>
        </div>
        {{end}}
    </div>
    <div class="footer">
        <p>This email was sent by the Scheme Eligibility Portal</p>
        <p>You received this because you asked for an eligibility digest.</p>
    </div>
</body>
</html>`

	t, err := template.New("eligibility_digest").Parse(tmpl)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, params); err != nil {
		return "", err
	}

	return buf.String(), nil
}

// renderDigestText renders the plain text version
func (s *Service) renderDigestText(params DigestParams) string {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Hi %s,\n\n", params.UserName))
	buf.WriteString(fmt.Sprintf("%d government schemes match your profile.\n\n", len(params.TopSchemes)))

	for i, scheme := range params.TopSchemes {
		buf.WriteString(fmt.Sprintf("%d. %s", i+1, scheme.SchemeName))
		if scheme.Category != "" {
			buf.WriteString(fmt.Sprintf(" (%s)", scheme.Category))
		}
		buf.WriteString(fmt.Sprintf(" - %.2f%% match\n", scheme.EligibilityScore))
	}

	if params.PortalURL != "" {
		buf.WriteString(fmt.Sprintf("\nSee the full list: %s\n", params.PortalURL))
	}

	return buf.String()
}
