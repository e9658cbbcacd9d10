package auth

import "github.com/golang-jwt/jwt/v5"

// extractClaims pulls the subject and email claims out of the identity
// token's payload segment. The signature is not verified; the values are
// used only for local display and as stored identity metadata. Malformed
// tokens yield empty strings.
func extractClaims(idToken string) (sub, email string) {
	tok, _, err := jwt.NewParser().ParseUnverified(idToken, jwt.MapClaims{})
	if err != nil {
		return "", ""
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return "", ""
	}
	sub, _ = claims["sub"].(string)
	email, _ = claims["email"].(string)
	return sub, email
}
