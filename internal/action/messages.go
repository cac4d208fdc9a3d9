package action

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/pocketledger/actions-api/internal/domain"
	"github.com/pocketledger/actions-api/internal/mapper"
	"github.com/pocketledger/actions-api/internal/upstream"
	"go.uber.org/zap"
)

const messagesResource = "messages"

// ListMessages returns a page of messages
func (r *Runner) ListMessages(ctx context.Context, opts domain.ListOptions) (domain.Paginated[domain.MessageDTO], error) {
	o := op{resource: messagesResource, action: "messages.list", endpoint: "/messages/", method: http.MethodGet}
	return query(ctx, r, o, domain.TagMessages, listKey("/messages/", opts), opts, func(ctx context.Context) (domain.Paginated[domain.MessageDTO], error) {
		list, err := r.client.ListMessages(ctx, r.queryCfg, mapper.ToListParams(opts))
		if err != nil {
			return domain.Paginated[domain.MessageDTO]{}, err
		}
		return mapper.ToPaginated(list, mapper.ToMessageDTO), nil
	})
}

// GetMessage returns one message by ID
func (r *Runner) GetMessage(ctx context.Context, id uuid.UUID) (domain.MessageDTO, error) {
	endpoint := "/messages/" + id.String() + "/"
	o := op{resource: messagesResource, action: "messages.get", endpoint: endpoint, method: http.MethodGet}
	return query(ctx, r, o, domain.TagMessages, endpoint, nil, func(ctx context.Context) (domain.MessageDTO, error) {
		message, err := r.client.GetMessage(ctx, r.queryCfg, id)
		if err != nil {
			return domain.MessageDTO{}, err
		}
		return mapper.ToMessageDTO(message), nil
	})
}

// CreateMessage creates a message
func (r *Runner) CreateMessage(ctx context.Context, req *domain.CreateMessageRequest) (domain.MessageDTO, error) {
	o := op{resource: messagesResource, action: "messages.create", endpoint: "/messages/", method: http.MethodPost}
	return mutate(ctx, r, o, domain.TagMessages, req, func(ctx context.Context) (domain.MessageDTO, error) {
		message, err := r.client.CreateMessage(ctx, r.mutationCfg, mapper.ToMessageWrite(req))
		if err != nil {
			return domain.MessageDTO{}, err
		}
		return mapper.ToMessageDTO(message), nil
	})
}

// DeleteMessage deletes a message
func (r *Runner) DeleteMessage(ctx context.Context, id uuid.UUID) error {
	endpoint := "/messages/" + id.String() + "/"
	o := op{resource: messagesResource, action: "messages.delete", endpoint: endpoint, method: http.MethodDelete}
	_, err := mutate(ctx, r, o, domain.TagMessages, nil, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, r.client.DeleteMessage(ctx, r.mutationCfg, id)
	})
	return err
}

// AttachFileInput carries an upload destined for a message
type AttachFileInput struct {
	FileName    string `validate:"required,max=255"`
	ContentType string `validate:"required,max=100"`
	Size        int64  `validate:"required,gt=0"`
	Data        io.Reader
}

// AttachFile stores the file and records it on the message. The blob is
// written first; if the upstream record fails, the orphaned blob is removed
// before the error is returned.
func (r *Runner) AttachFile(ctx context.Context, id uuid.UUID, input *AttachFileInput) (domain.AttachmentDTO, error) {
	endpoint := "/messages/" + id.String() + "/attachment/"
	o := op{resource: messagesResource, action: "messages.attach", endpoint: endpoint, method: http.MethodPost}
	start := time.Now()

	if err := r.checkInput(ctx, o, input, start); err != nil {
		return domain.AttachmentDTO{}, err
	}
	if input.Size > r.maxUploadBytes {
		verr := &ValidationError{Fields: map[string]string{
			"Size": "Exceeds the maximum upload size",
		}}
		r.record(ctx, o, domain.OutcomeValidationFailed, verr.Error(), start)
		return domain.AttachmentDTO{}, verr
	}

	storagePath, size, err := r.files.Upload(ctx, input.FileName, input.ContentType, input.Data)
	if err != nil {
		aerr := newActionError(endpoint, o.method, err)
		r.record(ctx, o, domain.OutcomeExecutionFailed, aerr.Error(), start)
		return domain.AttachmentDTO{}, aerr
	}

	_, err = r.client.AttachToMessage(ctx, r.mutationCfg, id, &upstream.MessageAttach{
		AttachmentURL: "/files/" + storagePath,
		FileName:      input.FileName,
		ContentType:   input.ContentType,
		SizeBytes:     size,
	})
	if err != nil {
		if cleanupErr := r.files.Delete(ctx, storagePath); cleanupErr != nil {
			r.logger.Warn("failed to remove orphaned attachment",
				zap.String("storage_path", storagePath),
				zap.Error(cleanupErr))
		}
		aerr := newActionError(endpoint, o.method, err)
		r.record(ctx, o, domain.OutcomeExecutionFailed, aerr.Error(), start)
		return domain.AttachmentDTO{}, aerr
	}

	r.invalidate(ctx, domain.TagMessages)
	r.record(ctx, o, domain.OutcomeSuccess, "", start)

	return domain.AttachmentDTO{
		MessageID:   id,
		FileName:    input.FileName,
		ContentType: input.ContentType,
		SizeBytes:   size,
		StoragePath: storagePath,
		UploadedAt:  time.Now().UTC(),
	}, nil
}
