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

// This file is central to the application's architecture: it initializes and
// holds all the client objects needed to communicate with Google Cloud
// services. It acts as a dependency injection container, creating a single,
// shared ServiceClients struct that is passed throughout the application.
//
// Logic Flow:
//  1. NewCloudServiceClients is called at application startup with the loaded Config.
//  2. It initializes clients for Storage, Pub/Sub, GenAI, and BigQuery.
//  3. It reads the configuration to create configured service wrappers: Pub/Sub
//     listeners, quota-aware agent models, and generation-model handles.
//  4. Everything is bundled into one ServiceClients struct used by the API
//     handlers, agents, and workflows.
//
// Structs:
//   - ServiceClients: Container for all initialized Google Cloud service
//     clients and wrappers.
//
// Functions:
//   - Close: Gracefully shuts down all client connections.
//   - NewCloudServiceClients: Factory that creates and configures all clients
//     based on the application's configuration.
package cloud

import (
	"context"
	"log/slog"

	"cloud.google.com/go/bigquery"
	"cloud.google.com/go/pubsub"
	"cloud.google.com/go/storage"
	"google.golang.org/genai"
)

// ServiceClients is a central container for all the clients that interact
// with external Google Cloud services. The struct is created once at startup
// and shared, so every component sees the same connections and rate limiters.
type ServiceClients struct {
	StorageClient   *storage.Client            // Client for Google Cloud Storage (GCS).
	ObjectStore     ObjectStore                // Blob-store adapter used by the pipeline commands.
	PubsubClient    *pubsub.Client             // Client for Google Cloud Pub/Sub.
	GenAIClient     *genai.Client              // Client for Google's Generative AI services (Vertex AI).
	BigQueryClient  *bigquery.Client           // Client for Google Cloud BigQuery.
	PubSubListeners map[string]*PubSubListener // Active Pub/Sub listeners, keyed by a logical name from the config.
	// AgentModels are the rate-limited LLMs used by the collateral agents,
	// keyed by their logical names (e.g., "creative-flash").
	AgentModels map[string]*QuotaAwareGenerativeAIModel
}

// Close is a utility method to gracefully shut down all the active client
// connections. Client lifecycles are normally bound to the root context, but
// tests and controlled shutdowns want an explicit release.
func (c *ServiceClients) Close() {
	_ = c.StorageClient.Close()
	_ = c.PubsubClient.Close()
	// The genai client carries no Close; its connections follow the context.
	_ = c.BigQueryClient.Close()
}

// NewCloudServiceClients initializes all required Google Cloud service
// clients based on the provided configuration. It is the single entry point
// for setting up the application's external dependencies.
//
// Inputs:
//   - ctx: The root context.Context for the application, used to manage the
//     lifecycle of the clients.
//   - config: A pointer to the loaded application configuration.
//
// Outputs:
//   - *ServiceClients: A pointer to the fully initialized ServiceClients struct.
//   - error: An error if any of the clients fail to initialize.
func NewCloudServiceClients(ctx context.Context, config *Config) (*ServiceClients, error) {
	sc, err := storage.NewClient(ctx)
	if err != nil {
		return nil, err
	}

	pc, err := pubsub.NewClient(ctx, config.Application.GoogleProjectId)
	if err != nil {
		return nil, err
	}

	slog.Info("creating genai client",
		"project", config.Application.GoogleProjectId,
		"location", config.Application.GoogleLocation)
	gc, err := genai.NewClient(ctx, &genai.ClientConfig{
		Project:  config.Application.GoogleProjectId,
		Location: config.Application.GoogleLocation,
		Backend:  genai.BackendVertexAI,
	})
	if err != nil {
		slog.Error("error creating genai client", "error", err)
		return nil, err
	}

	bc, err := bigquery.NewClient(ctx, config.Application.GoogleProjectId)
	if err != nil {
		return nil, err
	}

	// Create a listener shell for each configured subscription. The command
	// is attached later, once the workflows are built.
	subscriptions := make(map[string]*PubSubListener)
	for subKey := range config.TopicSubscriptions {
		values := config.TopicSubscriptions[subKey]
		actual, err := NewPubSubListener(pc, values.Name, nil)
		if err != nil {
			return nil, err
		}
		subscriptions[subKey] = actual
	}

	// Build a generative model per agent configuration, apply its generation
	// settings, and wrap it in the rate-limiting decorator.
	agentModels := make(map[string]*QuotaAwareGenerativeAIModel)
	for amKey := range config.AgentModels {
		values := config.AgentModels[amKey]
		model := &genai.GenerateContentConfig{
			Temperature:       genai.Ptr[float32](values.Temperature),
			TopP:              genai.Ptr[float32](values.TopP),
			TopK:              genai.Ptr[float32](values.TopK),
			MaxOutputTokens:   values.MaxTokens,
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: values.SystemInstructions}}},
			SafetySettings:    DefaultSafetySettings,
			ResponseMIMEType:  values.OutputFormat,
			Tools:             []*genai.Tool{},
		}
		agentModels[amKey] = NewQuotaAwareModel(model, values.Model, gc.Models, values.RateLimit)
	}

	return &ServiceClients{
		StorageClient:   sc,
		ObjectStore:     NewGCSObjectStore(sc),
		PubsubClient:    pc,
		GenAIClient:     gc,
		BigQueryClient:  bc,
		PubSubListeners: subscriptions,
		AgentModels:     agentModels,
	}, nil
}
