// Copyright 2025 Google, LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// This file defines a generic, reusable Pub/Sub message listener. Receiving
// is abstracted away from processing: the listener pulls messages from one
// subscription and hands each payload to an attached workflow Command, so the
// same listener drives both the assembly trigger and any future event-driven
// pipelines.
//
// Logic Flow:
//  1. A PubSubListener is created with a client and a subscription ID.
//  2. A Command (the processing chain) is attached to the listener.
//  3. Listen starts a background goroutine that waits for messages.
//  4. Each arriving message is passed to the command inside its own trace span.
//  5. The message is Ack'd only when the command finishes without errors,
//     giving at-least-once processing; failures fall back to the
//     subscription's redelivery policy.
//
// Structs:
//   - PubSubListener: Manages one subscription and its processing command.
//
// Functions:
//   - NewPubSubListener: Constructor for creating a new PubSubListener.
//   - SetCommand: Attaches a processing command to the listener.
//   - Listen: Starts the background process to receive and handle messages.
package cloud

import (
	"context"
	"log/slog"

	"cloud.google.com/go/pubsub"
	"github.com/jaycherian/gcp-go-artisan-studio/internal/core/cor"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// PubSubListener encapsulates the components needed to listen to one Google
// Cloud Pub/Sub subscription and route its messages into a workflow command.
// Listeners have a life-cycle independent of individual API requests, which
// is why they live in the cloud package rather than next to the workflows.
type PubSubListener struct {
	client       *pubsub.Client       // The client for interacting with the Pub/Sub service.
	subscription *pubsub.Subscription // The subscription this listener pulls messages from.
	command      cor.Command          // The command executed for each message received.
}

// NewPubSubListener initializes the listener with a Pub/Sub client, the ID of
// the subscription to listen to, and the command that will process the
// messages.
//
// Inputs:
//   - pubsubClient: An authenticated *pubsub.Client.
//   - subscriptionID: The string ID of the subscription.
//   - command: A cor.Command holding the processing logic, or nil to attach later.
//
// Outputs:
//   - *PubSubListener: A pointer to the newly created listener.
//   - error: Reserved for construction failures.
func NewPubSubListener(
	pubsubClient *pubsub.Client,
	subscriptionID string,
	command cor.Command,
) (*PubSubListener, error) {
	return &PubSubListener{
		client:       pubsubClient,
		subscription: pubsubClient.Subscription(subscriptionID),
		command:      command,
	}, nil
}

// SetCommand attaches a command to the listener. Listeners are created during
// client setup, before the workflow chains exist; the first command attached
// wins and later calls are ignored.
//
// Inputs:
//   - command: The cor.Command to execute when a message is received.
func (m *PubSubListener) SetCommand(command cor.Command) {
	if m.command == nil {
		m.command = command
	}
}

// Listen starts the asynchronous message receiving loop in its own goroutine
// so the server keeps handling API requests while messages arrive in the
// background. Canceling the context stops the loop.
//
// Inputs:
//   - ctx: Controls the lifecycle of the listener; cancellation during
//     graceful shutdown stops message receipt.
func (m *PubSubListener) Listen(ctx context.Context) {
	slog.Info("starting subscription listener", "subscription", m.subscription.String())

	go func() {
		tracer := otel.Tracer("message-listener")

		err := m.subscription.Receive(ctx, func(_ context.Context, msg *pubsub.Message) {
			spanCtx, span := tracer.Start(ctx, "receive-message")
			span.SetAttributes(attribute.String("msg", string(msg.Data)))

			// Seed a fresh chain context with the raw payload as input. The
			// context owns every temp file the run creates; Close reclaims
			// them whether or not the command chain succeeded.
			chainCtx := cor.NewBaseContext()
			chainCtx.SetContext(spanCtx)
			chainCtx.Add(cor.CtxIn, string(msg.Data))
			defer chainCtx.Close()

			m.command.Execute(chainCtx)

			if !chainCtx.HasErrors() {
				span.SetStatus(codes.Ok, "success")
				msg.Ack()
			} else {
				span.SetStatus(codes.Error, "failed")
				for _, e := range chainCtx.GetErrors() {
					slog.Error("error executing chain", "error", e)
				}
				// No Ack and no Nack: the message redelivers after its
				// deadline per the subscription's retry policy.
			}
			span.End()
		})
		if err != nil {
			slog.Error("error receiving data", "error", err)
		}
	}()
}
