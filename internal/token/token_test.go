package token_test

import (
	"strings"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/idrsdev/agile-task/core/config"
	"github.com/idrsdev/agile-task/internal/token"
)

var _ = Describe("Manager", func() {
	var (
		cfg config.AuthConfig
		mgr *token.Manager
		now time.Time
	)

	BeforeEach(func() {
		cfg = config.AuthConfig{
			JWTSecret:       strings.Repeat("s", 32),
			Issuer:          "agile-task-test",
			AccessTokenTTL:  15 * time.Minute,
			RefreshTokenTTL: time.Hour,
		}
		now = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
		mgr = token.NewManager(cfg).WithClock(func() time.Time { return now })
	})

	It("round-trips the user id", func() {
		signed, expiresAt, err := mgr.IssueAccess(42)
		Expect(err).NotTo(HaveOccurred())
		Expect(expiresAt).To(Equal(now.Add(15 * time.Minute)))

		claims, err := mgr.Verify(signed)
		Expect(err).NotTo(HaveOccurred())
		userID, err := claims.UserID()
		Expect(err).NotTo(HaveOccurred())
		Expect(userID).To(Equal(int64(42)))
		Expect(claims.ID).NotTo(BeEmpty())
	})

	It("rejects expired tokens", func() {
		signed, _, err := mgr.IssueAccess(42)
		Expect(err).NotTo(HaveOccurred())

		later := mgr.WithClock(func() time.Time { return now.Add(16 * time.Minute) })
		_, err = later.Verify(signed)
		Expect(err).To(MatchError(token.ErrInvalidToken))
	})

	It("rejects tokens signed with another secret", func() {
		other := cfg
		other.JWTSecret = strings.Repeat("x", 32)
		signed, _, err := token.NewManager(other).WithClock(func() time.Time { return now }).IssueAccess(42)
		Expect(err).NotTo(HaveOccurred())

		_, err = mgr.Verify(signed)
		Expect(err).To(MatchError(token.ErrInvalidToken))
	})

	It("rejects tokens from another issuer", func() {
		other := cfg
		other.Issuer = "someone-else"
		signed, _, err := token.NewManager(other).WithClock(func() time.Time { return now }).IssueAccess(42)
		Expect(err).NotTo(HaveOccurred())

		_, err = mgr.Verify(signed)
		Expect(err).To(MatchError(token.ErrInvalidToken))
	})

	It("rejects garbage", func() {
		_, err := mgr.Verify("not-a-jwt")
		Expect(err).To(MatchError(token.ErrInvalidToken))
	})
})

var _ = Describe("refresh tokens", func() {
	It("hashes deterministically and never returns the plain token as hash", func() {
		plain, hash, err := token.NewRefreshToken()
		Expect(err).NotTo(HaveOccurred())
		Expect(plain).NotTo(BeEmpty())
		Expect(hash).To(HaveLen(64))
		Expect(hash).NotTo(Equal(plain))
		Expect(token.HashRefreshToken(plain)).To(Equal(hash))
	})

	It("generates distinct tokens", func() {
		a, _, err := token.NewRefreshToken()
		Expect(err).NotTo(HaveOccurred())
		b, _, err := token.NewRefreshToken()
		Expect(err).NotTo(HaveOccurred())
		Expect(a).NotTo(Equal(b))
	})
})
