package common

// AuthHeaderName is the HTTP header carrying the bearer token.
const AuthHeaderName = "Authorization"

// BearerPrefix is the expected scheme prefix of the Authorization header.
const BearerPrefix = "Bearer"

// TokenTypeBearer is the token_type value returned with every issued token.
const TokenTypeBearer = "bearer"
