package queue_test

import (
	"context"
	"errors"
	"net"
	"sync"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/redis/go-redis/v9"

	"github.com/idrsdev/agile-task/internal/model"
	"github.com/idrsdev/agile-task/internal/queue"
)

var _ = Describe("ParseMessage", func() {
	It("parses a member event", func() {
		msg, err := queue.ParseMessage(redis.XMessage{
			ID: "1-0",
			Values: map[string]any{
				"event_type":      "workspace.member_added",
				"workspace_id":    "10",
				"actor_id":        "7",
				"subject_user_id": "3",
				"attempt":         "2",
				"trace_id":        "abc",
				"metadata":        `{"name":"Acme"}`,
			},
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(msg.ID).To(Equal("1-0"))
		Expect(msg.EventType).To(Equal(model.WorkspaceEventMemberAdded))
		Expect(msg.WorkspaceID).To(Equal(int64(10)))
		Expect(msg.ActorID).To(Equal(int64(7)))
		Expect(msg.SubjectUserID).To(HaveValue(Equal(int64(3))))
		Expect(msg.Attempt).To(Equal(2))
		Expect(msg.TraceID).To(Equal("abc"))
		Expect(msg.Metadata).To(Equal(`{"name":"Acme"}`))
	})

	It("defaults attempt to 1", func() {
		msg, err := queue.ParseMessage(redis.XMessage{
			ID: "1-0",
			Values: map[string]any{
				"event_type":   "workspace.created",
				"workspace_id": "10",
				"actor_id":     "7",
			},
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(msg.Attempt).To(Equal(1))
		Expect(msg.SubjectUserID).To(BeNil())
	})

	It("rejects unknown event types", func() {
		_, err := queue.ParseMessage(redis.XMessage{
			ID: "1-0",
			Values: map[string]any{
				"event_type":   "workspace.exploded",
				"workspace_id": "10",
				"actor_id":     "7",
			},
		})
		Expect(err).To(MatchError(ContainSubstring("unknown event_type")))
	})

	It("rejects messages without a workspace", func() {
		_, err := queue.ParseMessage(redis.XMessage{
			ID: "1-0",
			Values: map[string]any{
				"event_type": "workspace.created",
				"actor_id":   "7",
			},
		})
		Expect(err).To(MatchError(ContainSubstring("missing workspace_id")))
	})

	It("rejects malformed ids", func() {
		_, err := queue.ParseMessage(redis.XMessage{
			ID: "1-0",
			Values: map[string]any{
				"event_type":   "workspace.created",
				"workspace_id": "ten",
				"actor_id":     "7",
			},
		})
		Expect(err).To(MatchError(ContainSubstring("parsing workspace_id")))
	})
})

var _ = Describe("RedisConsumer", func() {
	var (
		ctx      context.Context
		hook     *recordingHook
		consumer *queue.RedisConsumer
		msg      queue.Message
	)

	BeforeEach(func() {
		ctx = context.Background()
		hook = &recordingHook{failOn: map[string]error{}}
		client := redis.NewClient(&redis.Options{Addr: "localhost:0"})
		client.AddHook(hook)
		DeferCleanup(client.Close)

		var err error
		consumer, err = queue.NewRedisConsumer(ctx, client, queue.ConsumerConfig{
			Stream:    "workspace-events",
			Group:     "audit",
			Consumer:  "audit-1",
			DLQStream: "workspace-events-dlq",
		})
		Expect(err).NotTo(HaveOccurred())
		hook.reset()

		msg = queue.Message{ID: "1-0", EventType: model.WorkspaceEventCreated, WorkspaceID: 10, ActorID: 7, Attempt: 1}
	})

	Describe("Requeue", func() {
		It("appends the retry before acking the original", func() {
			Expect(consumer.Requeue(ctx, msg, "db down")).To(Succeed())

			Expect(hook.names()).To(Equal([]string{"xadd", "xack"}))
		})

		It("leaves the original pending when the append fails", func() {
			hook.failOn["xadd"] = errors.New("connection refused")

			err := consumer.Requeue(ctx, msg, "db down")

			Expect(err).To(MatchError(ContainSubstring("xadd requeue")))
			Expect(hook.names()).To(Equal([]string{"xadd"}))
		})
	})

	Describe("SendDLQ", func() {
		It("copies to the dead letter stream before acking", func() {
			Expect(consumer.SendDLQ(ctx, msg, "gave up")).To(Succeed())

			Expect(hook.names()).To(Equal([]string{"xadd", "xack"}))
		})

		It("leaves the original pending when the copy fails", func() {
			hook.failOn["xadd"] = errors.New("connection refused")

			Expect(consumer.SendDLQ(ctx, msg, "gave up")).NotTo(Succeed())
			Expect(hook.names()).To(Equal([]string{"xadd"}))
		})
	})
})

// recordingHook answers every command locally and records its name.
type recordingHook struct {
	mu     sync.Mutex
	cmds   []string
	failOn map[string]error
}

func (h *recordingHook) DialHook(next redis.DialHook) redis.DialHook {
	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		return nil, errors.New("dial disabled in tests")
	}
}

func (h *recordingHook) ProcessHook(redis.ProcessHook) redis.ProcessHook {
	return func(_ context.Context, cmd redis.Cmder) error {
		h.mu.Lock()
		defer h.mu.Unlock()
		h.cmds = append(h.cmds, cmd.Name())
		if err := h.failOn[cmd.Name()]; err != nil {
			cmd.SetErr(err)
			return err
		}
		return nil
	}
}

func (h *recordingHook) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return next
}

func (h *recordingHook) names() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.cmds...)
}

func (h *recordingHook) reset() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.cmds = nil
}
