package domain_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/matchwise/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeedExcludesViewer(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	a := f.addUser(t, "Alice")
	b := f.addUser(t, "Bob")
	c := f.addUser(t, "Carol")

	feed, err := f.feed.ComputeFeed(ctx, a.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, profileIDs(feed), []string{b.ID.String(), c.ID.String()})
}

func TestFeedMissingViewer(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.addUser(t, "Alice")

	_, err := f.feed.ComputeFeed(ctx, uuid.New())
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestFeedExcludesInterestedAndAcceptedEdges(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	a := f.addUser(t, "Alice")
	b := f.addUser(t, "Bob")
	c := f.addUser(t, "Carol")
	d := f.addUser(t, "Dave")

	// a -> b interested (open), c -> a interested then accepted
	_, err := f.conns.SendInterest(ctx, a.ID, b.ID)
	require.NoError(t, err)
	req, err := f.conns.SendInterest(ctx, c.ID, a.ID)
	require.NoError(t, err)
	_, err = f.conns.Accept(ctx, req.ID, a.ID)
	require.NoError(t, err)

	feed, err := f.feed.ComputeFeed(ctx, a.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, profileIDs(feed), []string{d.ID.String()})
}

func TestFeedKeepsRejectedAndIgnoredCounterparts(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	a := f.addUser(t, "Alice")
	b := f.addUser(t, "Bob")
	c := f.addUser(t, "Carol")

	// a -> b rejected, a -> c ignored: neither edge hides the counterpart.
	req, err := f.conns.SendInterest(ctx, a.ID, b.ID)
	require.NoError(t, err)
	_, err = f.conns.Reject(ctx, req.ID, b.ID)
	require.NoError(t, err)
	_, err = f.conns.SendIgnore(ctx, a.ID, c.ID)
	require.NoError(t, err)

	feed, err := f.feed.ComputeFeed(ctx, a.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, profileIDs(feed), []string{b.ID.String(), c.ID.String()})
}

func TestFeedExcludesBlocksBothDirections(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	a := f.addUser(t, "Alice")
	b := f.addUser(t, "Bob")
	c := f.addUser(t, "Carol")
	d := f.addUser(t, "Dave")

	// a blocked b, c blocked a: both disappear from a's feed and a from theirs.
	_, err := f.conns.Block(ctx, a.ID, b.ID)
	require.NoError(t, err)
	_, err = f.conns.Block(ctx, c.ID, a.ID)
	require.NoError(t, err)

	feed, err := f.feed.ComputeFeed(ctx, a.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, profileIDs(feed), []string{d.ID.String()})

	feed, err = f.feed.ComputeFeed(ctx, b.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, profileIDs(feed), []string{c.ID.String(), d.ID.String()})

	feed, err = f.feed.ComputeFeed(ctx, c.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, profileIDs(feed), []string{b.ID.String(), d.ID.String()})
}

func TestFeedProjectsPublicFieldsOnly(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	a := f.addUser(t, "Alice")
	b := f.addUser(t, "Bob")

	feed, err := f.feed.ComputeFeed(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, feed, 1)
	assert.Equal(t, b.ID, feed[0].ID)
	assert.Equal(t, "Bob", feed[0].FirstName)
	// Profile has no email or credential fields at all; spot-check the
	// projection carries the public ones.
	assert.Equal(t, 25, feed[0].Age)
}

func TestFeedScenarioConnectAndBlock(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	a := f.addUser(t, "Alice")
	b := f.addUser(t, "Bob")
	c := f.addUser(t, "Carol")

	// A sends interest to B, B accepts.
	req, err := f.conns.SendInterest(ctx, a.ID, b.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusInterested, req.Status)
	accepted, err := f.conns.Accept(ctx, req.ID, b.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusAccepted, accepted.Status)

	feed, err := f.feed.ComputeFeed(ctx, a.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, profileIDs(feed), []string{c.ID.String()})

	// C blocks A.
	_, err = f.conns.Block(ctx, c.ID, a.ID)
	require.NoError(t, err)

	feed, err = f.feed.ComputeFeed(ctx, a.ID)
	require.NoError(t, err)
	assert.Empty(t, feed)

	feed, err = f.feed.ComputeFeed(ctx, c.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, profileIDs(feed), []string{b.ID.String()})

	_, err = f.conns.SendInterest(ctx, a.ID, c.ID)
	assert.ErrorIs(t, err, domain.ErrBlockedRelationship)
}

func TestConnectionsListing(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	a := f.addUser(t, "Alice")
	b := f.addUser(t, "Bob")
	c := f.addUser(t, "Carol")

	// a <-> b accepted, c -> a still interested
	req, err := f.conns.SendInterest(ctx, a.ID, b.ID)
	require.NoError(t, err)
	_, err = f.conns.Accept(ctx, req.ID, b.ID)
	require.NoError(t, err)
	_, err = f.conns.SendInterest(ctx, c.ID, a.ID)
	require.NoError(t, err)

	conns, err := f.feed.Connections(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, conns, 1)
	require.NotNil(t, conns[0].Counterpart)
	assert.Equal(t, b.ID, conns[0].Counterpart.ID)

	// The same accepted edge shows up from b's side, resolved to a.
	conns, err = f.feed.Connections(ctx, b.ID)
	require.NoError(t, err)
	require.Len(t, conns, 1)
	assert.Equal(t, a.ID, conns[0].Counterpart.ID)
}

func TestPendingRequestsListing(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	a := f.addUser(t, "Alice")
	b := f.addUser(t, "Bob")
	c := f.addUser(t, "Carol")

	// b -> a interested, a -> c interested (outgoing, must not appear)
	_, err := f.conns.SendInterest(ctx, b.ID, a.ID)
	require.NoError(t, err)
	_, err = f.conns.SendInterest(ctx, a.ID, c.ID)
	require.NoError(t, err)

	pending, err := f.feed.PendingRequests(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, b.ID, pending[0].FromUserID)
	require.NotNil(t, pending[0].Counterpart)
	assert.Equal(t, b.ID, pending[0].Counterpart.ID)
}
