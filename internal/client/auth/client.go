// Package auth drives the SRP authentication exchange with the identity
// provider and manages the resulting credential lifecycle: login, required
// password change, refresh, logout, and lazy token retrieval.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	cip "github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"

	"github.com/mnedelko/geniable/internal/client/tokens"
	"github.com/mnedelko/geniable/internal/common"
	"github.com/mnedelko/geniable/internal/logging"
	"github.com/mnedelko/geniable/internal/srpx"
)

// timestampLayout is the fixed textual format the provider expects in the
// challenge response. The timestamp enters the claim signature, so the same
// string must be sent byte-identical.
const timestampLayout = "Mon Jan 02 15:04:05 UTC 2006"

// CognitoAPI is the subset of the identity-provider API the client uses.
// Tests substitute a fake; production code passes the SDK client.
type CognitoAPI interface {
	InitiateAuth(ctx context.Context, in *cip.InitiateAuthInput, optFns ...func(*cip.Options)) (*cip.InitiateAuthOutput, error)
	RespondToAuthChallenge(ctx context.Context, in *cip.RespondToAuthChallengeInput, optFns ...func(*cip.Options)) (*cip.RespondToAuthChallengeOutput, error)
}

// NewIdentityProvider builds the SDK client for the given region. SRP calls
// are unsigned, so anonymous credentials are used.
func NewIdentityProvider(ctx context.Context, region string) (*cip.Client, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(region),
		awsconfig.WithCredentialsProvider(aws.AnonymousCredentials{}),
	)
	if err != nil {
		return nil, fmt.Errorf("loading provider config: %w", err)
	}
	return cip.NewFromConfig(cfg), nil
}

// Client is the authentication session against one user pool. It holds no
// per-attempt state; SRP ephemeral values live only inside Login.
type Client struct {
	userPoolID string
	clientID   string
	idp        CognitoAPI
	store      *tokens.Store
	log        logging.Logger

	// now is a clock seam for tests.
	now func() time.Time
}

// NewClient constructs a Client bound to the given provider API and token
// store.
func NewClient(userPoolID, clientID string, idp CognitoAPI, store *tokens.Store, log logging.Logger) *Client {
	return &Client{
		userPoolID: userPoolID,
		clientID:   clientID,
		idp:        idp,
		store:      store,
		log:        log,
		now:        time.Now,
	}
}

// Login authenticates the user with SRP. On success the credential bundle is
// stored and returned; for accounts that must change a temporary password,
// the result carries the password-change challenge instead.
//
// The SRP key pair is generated fresh per call and discarded when the call
// returns; a failed login must be retried with a new Login call.
func (c *Client) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	kp := srpx.GenerateKeyPair()

	out, err := c.idp.InitiateAuth(ctx, &cip.InitiateAuthInput{
		AuthFlow: types.AuthFlowTypeUserSrpAuth,
		ClientId: aws.String(c.clientID),
		AuthParameters: map[string]string{
			"USERNAME": username,
			"SRP_A":    kp.PublicHex(),
		},
	})
	if err != nil {
		return nil, classifyProviderError(err)
	}

	if out.ChallengeName != types.ChallengeNameTypePasswordVerifier {
		return nil, fmt.Errorf("%w: %s", common.ErrUnexpectedChallenge, out.ChallengeName)
	}

	ch := srpx.Challenge{
		UserIDForSRP: out.ChallengeParameters["USER_ID_FOR_SRP"],
		SaltHex:      out.ChallengeParameters["SALT"],
		PublicBHex:   out.ChallengeParameters["SRP_B"],
		SecretBlock:  out.ChallengeParameters["SECRET_BLOCK"],
		Timestamp:    c.now().UTC().Format(timestampLayout),
	}
	if ch.UserIDForSRP == "" || ch.SaltHex == "" || ch.PublicBHex == "" || ch.SecretBlock == "" {
		return nil, fmt.Errorf("%w: incomplete challenge parameters", common.ErrMalformedResponse)
	}

	claim, err := kp.ComputeClaim(c.userPoolID, password, ch)
	if err != nil {
		return nil, err
	}

	resp, err := c.idp.RespondToAuthChallenge(ctx, &cip.RespondToAuthChallengeInput{
		ClientId:      aws.String(c.clientID),
		ChallengeName: types.ChallengeNameTypePasswordVerifier,
		ChallengeResponses: map[string]string{
			"USERNAME":                    ch.UserIDForSRP,
			"PASSWORD_CLAIM_SECRET_BLOCK": ch.SecretBlock,
			"PASSWORD_CLAIM_SIGNATURE":    claim,
			"TIMESTAMP":                   ch.Timestamp,
		},
	})
	if err != nil {
		return nil, classifyProviderError(err)
	}

	// The password-change demand only surfaces after SRP verification
	// succeeded, as a second challenge on the response.
	if resp.ChallengeName == types.ChallengeNameTypeNewPasswordRequired {
		userID := resp.ChallengeParameters["USER_ID_FOR_SRP"]
		if userID == "" {
			userID = username
		}
		c.log.Info(ctx, "password change required", "user", userID)
		return &LoginResult{PasswordChange: &PasswordChangeChallenge{
			Session: aws.ToString(resp.Session),
			UserID:  userID,
		}}, nil
	}

	toks, err := c.tokensFromResult(resp.AuthenticationResult, username)
	if err != nil {
		return nil, err
	}
	if err := c.store.Store(ctx, toks); err != nil {
		return nil, err
	}
	return &LoginResult{Tokens: toks}, nil
}

// CompletePasswordChange answers the password-change challenge with the new
// password. The provider's response does not carry the email, so the caller
// supplies it for the stored bundle.
func (c *Client) CompletePasswordChange(ctx context.Context, session, userID, newPassword, email string) (*tokens.AuthTokens, error) {
	resp, err := c.idp.RespondToAuthChallenge(ctx, &cip.RespondToAuthChallengeInput{
		ClientId:      aws.String(c.clientID),
		ChallengeName: types.ChallengeNameTypeNewPasswordRequired,
		Session:       aws.String(session),
		ChallengeResponses: map[string]string{
			"USERNAME":     userID,
			"NEW_PASSWORD": newPassword,
		},
	})
	if err != nil {
		return nil, classifyProviderError(err)
	}

	toks, err := c.tokensFromResult(resp.AuthenticationResult, email)
	if err != nil {
		return nil, err
	}
	if err := c.store.Store(ctx, toks); err != nil {
		return nil, err
	}
	return toks, nil
}

// Refresh exchanges the refresh token for a new access/identity token pair.
// The refresh token itself is not rotated. User id and email are carried
// over from the stored bundle since the response does not repeat them.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (*tokens.AuthTokens, error) {
	out, err := c.idp.InitiateAuth(ctx, &cip.InitiateAuthInput{
		AuthFlow: types.AuthFlowTypeRefreshTokenAuth,
		ClientId: aws.String(c.clientID),
		AuthParameters: map[string]string{
			"REFRESH_TOKEN": refreshToken,
		},
	})
	if err != nil {
		return nil, classifyProviderError(err)
	}

	result := out.AuthenticationResult
	if result == nil {
		return nil, fmt.Errorf("%w: refresh carried no result", common.ErrMalformedResponse)
	}

	var userID, email string
	if stored := c.store.Load(ctx); stored != nil {
		userID, email = stored.UserID, stored.Email
	}
	if userID == "" {
		userID, _ = extractClaimsFromResult(result)
	}

	toks := &tokens.AuthTokens{
		AccessToken:  aws.ToString(result.AccessToken),
		IDToken:      aws.ToString(result.IdToken),
		RefreshToken: refreshToken,
		ExpiresAt:    c.now().UTC().Add(time.Duration(result.ExpiresIn) * time.Second),
		UserID:       userID,
		Email:        email,
	}

	if err := c.store.Store(ctx, toks); err != nil {
		return nil, err
	}
	return toks, nil
}

// Logout clears stored credentials. Purely local; no provider call.
func (c *Client) Logout(ctx context.Context) error {
	return c.store.Clear(ctx)
}

// CurrentTokens loads the stored bundle, refreshing inline when it is near
// expiry. It returns nil when no usable credentials exist; it never returns
// an error, so callers uniformly treat nil as "please log in again".
func (c *Client) CurrentTokens(ctx context.Context) *tokens.AuthTokens {
	t := c.store.Load(ctx)
	if t == nil {
		return nil
	}
	if !t.IsExpiredAt(c.now()) {
		return t
	}

	refreshed, err := c.Refresh(ctx, t.RefreshToken)
	if err != nil {
		c.log.Warn(ctx, "token refresh failed", "error", err)
		return nil
	}
	return refreshed
}

// IsAuthenticated reports whether usable credentials exist.
func (c *Client) IsAuthenticated(ctx context.Context) bool {
	return c.CurrentTokens(ctx) != nil
}

// tokensFromResult converts a final authentication result into a stored
// bundle. The user id comes from the identity token's subject claim; email
// is the caller-supplied login identifier.
func (c *Client) tokensFromResult(result *types.AuthenticationResultType, email string) (*tokens.AuthTokens, error) {
	if result == nil {
		return nil, fmt.Errorf("%w: no authentication result", common.ErrMalformedResponse)
	}
	userID, _ := extractClaimsFromResult(result)
	return &tokens.AuthTokens{
		AccessToken:  aws.ToString(result.AccessToken),
		IDToken:      aws.ToString(result.IdToken),
		RefreshToken: aws.ToString(result.RefreshToken),
		ExpiresAt:    c.now().UTC().Add(time.Duration(result.ExpiresIn) * time.Second),
		UserID:       userID,
		Email:        email,
	}, nil
}

func extractClaimsFromResult(result *types.AuthenticationResultType) (sub, email string) {
	return extractClaims(aws.ToString(result.IdToken))
}

// classifyProviderError maps provider API errors onto the local taxonomy.
// The provider detail is preserved as wrapped context.
func classifyProviderError(err error) error {
	var (
		notAuthorized   *types.NotAuthorizedException
		userNotFound    *types.UserNotFoundException
		notConfirmed    *types.UserNotConfirmedException
		invalidPassword *types.InvalidPasswordException
	)
	switch {
	case errors.As(err, &notAuthorized):
		return fmt.Errorf("%w: %s", common.ErrNotAuthorized, aws.ToString(notAuthorized.Message))
	case errors.As(err, &userNotFound):
		return fmt.Errorf("%w: %s", common.ErrUserNotFound, aws.ToString(userNotFound.Message))
	case errors.As(err, &notConfirmed):
		return fmt.Errorf("%w: %s", common.ErrUserNotConfirmed, aws.ToString(notConfirmed.Message))
	case errors.As(err, &invalidPassword):
		return fmt.Errorf("%w: %s", common.ErrInvalidPassword, aws.ToString(invalidPassword.Message))
	default:
		return fmt.Errorf("authentication failed: %w", err)
	}
}
