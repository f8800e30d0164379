package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/newsblog/newsblog/authz"
	"github.com/newsblog/newsblog/utils"
)

// ContextActorKey stores the request's authz.Actor inside the Gin context.
const ContextActorKey = "actor"

// AuthRequired rejects requests that do not carry a valid, unrevoked token.
func AuthRequired() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		actor, errCode, errMsg := actorFromHeader(ctx)
		if errCode != 0 {
			utils.Error(ctx, http.StatusUnauthorized, errCode, errMsg)
			ctx.Abort()
			return
		}
		ctx.Set(ContextActorKey, actor)
		ctx.Next()
	}
}

// OptionalAuth resolves the actor when a token is present and falls back to
// the anonymous actor otherwise. Used where anonymous access is permitted,
// e.g. posting comments.
func OptionalAuth() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if ctx.GetHeader("Authorization") == "" {
			ctx.Set(ContextActorKey, authz.Anonymous())
			ctx.Next()
			return
		}
		actor, errCode, errMsg := actorFromHeader(ctx)
		if errCode != 0 {
			utils.Error(ctx, http.StatusUnauthorized, errCode, errMsg)
			ctx.Abort()
			return
		}
		ctx.Set(ContextActorKey, actor)
		ctx.Next()
	}
}

// Actor extracts the request's actor; absent means anonymous.
func Actor(ctx *gin.Context) authz.Actor {
	if v, ok := ctx.Get(ContextActorKey); ok {
		if actor, ok := v.(authz.Actor); ok {
			return actor
		}
	}
	return authz.Anonymous()
}

func actorFromHeader(ctx *gin.Context) (authz.Actor, int, string) {
	authHeader := ctx.GetHeader("Authorization")
	if authHeader == "" {
		return authz.Actor{}, 40101, "authorization header missing"
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return authz.Actor{}, 40102, "invalid authorization header format"
	}
	tokenString := strings.TrimSpace(parts[1])
	if tokenString == "" {
		return authz.Actor{}, 40103, "empty bearer token"
	}
	if utils.IsTokenBlacklisted(tokenString) {
		return authz.Actor{}, 40104, "token revoked"
	}
	claims, err := utils.ParseToken(tokenString)
	if err != nil {
		return authz.Actor{}, 40105, "invalid token"
	}
	return authz.Actor{UserID: claims.UserID, Name: claims.Name, IsAdmin: claims.IsAdmin}, 0, ""
}
