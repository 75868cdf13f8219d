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

// Package model defines the core data structures for the application. This
// file provides a complete example Collateral used for few-shot prompting.
// Embedding a well-formed JSON example in the story prompt significantly
// improves the reliability of the model's structured output.
package model

// GetExampleCollateral returns a fully populated Collateral suitable for
// serializing into the story agent's prompt template.
func GetExampleCollateral() *Collateral {
	return &Collateral{
		ProductName: "Handwoven Juniper Basket",
		Story: "Every strand of this basket began as a wind-bent juniper branch " +
			"gathered from the high desert. Maria splits each branch by hand, " +
			"soaks it in rainwater for three days, and weaves it in the spiral " +
			"pattern her grandmother taught her.",
		History: "Coil weaving in the high desert dates back more than four " +
			"centuries. The spiral form was born of necessity: a single " +
			"continuous coil could be repaired season after season.",
		Narration: "From wind-bent branch to woven spiral, every basket carries " +
			"four centuries of high desert craft in its coils.",
		MusicPrompt: "warm acoustic guitar, gentle hand percussion, unhurried, earthy",
		FAQs: []*FAQ{
			{
				Question: "Is each basket unique?",
				Answer:   "Yes. Every basket is woven by hand from branches with their own grain and curve, so no two are alike.",
			},
			{
				Question: "How should I care for it?",
				Answer:   "Keep it away from direct sunlight and wipe it with a dry cloth. A light misting once a season keeps the fibers supple.",
			},
		},
		Tagline: "Four centuries of craft, one continuous coil.",
	}
}
