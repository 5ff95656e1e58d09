package graphql

import (
	"github.com/graphql-go/graphql"
	"github.com/pharmos/gateway/internal/pubsub"
	"github.com/pharmos/gateway/pkg/store"
)

// Subscription fields attach to the bus in their Subscribe function, which
// must hand the executor a channel of event payloads. The executor re-runs
// Resolve for every payload received, so Resolve just passes the source
// through and lets the selection set project it.

func (s *Schema) defineSubscription() *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "Subscription",
		Fields: graphql.Fields{
			"moleculeCreated": &graphql.Field{
				Type:      s.moleculeType,
				Resolve:   resolveSource,
				Subscribe: s.subscribeTo(pubsub.TopicMoleculeCreated, nil),
			},
			"moleculeUpdated": &graphql.Field{
				Type: s.moleculeType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.ID},
				},
				Resolve: resolveSource,
				Subscribe: s.subscribeTo(pubsub.TopicMoleculeUpdated, func(args map[string]interface{}) pubsub.Predicate {
					id, ok := args["id"].(string)
					if !ok {
						return nil
					}
					return func(ev pubsub.Event) bool {
						m, ok := ev.Payload.(*store.Molecule)
						return ok && m.ID == id
					}
				}),
			},
			"projectUpdated": &graphql.Field{
				Type: s.projectType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.ID},
				},
				Resolve: resolveSource,
				Subscribe: s.subscribeTo(pubsub.TopicProjectUpdated, func(args map[string]interface{}) pubsub.Predicate {
					id, ok := args["id"].(string)
					if !ok {
						return nil
					}
					return func(ev pubsub.Event) bool {
						pr, ok := ev.Payload.(*store.Project)
						return ok && pr.ID == id
					}
				}),
			},
			"clinicalTrialUpdated": &graphql.Field{
				Type: s.trialType,
				Args: graphql.FieldConfigArgument{
					"projectId": &graphql.ArgumentConfig{Type: graphql.ID},
				},
				Resolve: resolveSource,
				Subscribe: s.subscribeTo(pubsub.TopicTrialUpdated, func(args map[string]interface{}) pubsub.Predicate {
					projectID, ok := args["projectId"].(string)
					if !ok {
						return nil
					}
					return func(ev pubsub.Event) bool {
						t, ok := ev.Payload.(*store.ClinicalTrial)
						return ok && t.ProjectID == projectID
					}
				}),
			},
			"safetyEventCreated": &graphql.Field{
				Type: s.safetyEventType,
				Args: graphql.FieldConfigArgument{
					"moleculeId": &graphql.ArgumentConfig{Type: graphql.ID},
				},
				Resolve: resolveSource,
				Subscribe: s.subscribeTo(pubsub.TopicSafetyEventCreated, func(args map[string]interface{}) pubsub.Predicate {
					moleculeID, ok := args["moleculeId"].(string)
					if !ok {
						return nil
					}
					return func(ev pubsub.Event) bool {
						e, ok := ev.Payload.(*store.SafetyEvent)
						return ok && e.MoleculeID == moleculeID
					}
				}),
			},
			"predictionCompleted": &graphql.Field{
				Type: s.predictionType,
				Args: graphql.FieldConfigArgument{
					"moleculeId": &graphql.ArgumentConfig{Type: graphql.ID},
				},
				Resolve: resolveSource,
				Subscribe: s.subscribeTo(pubsub.TopicPredictionCompleted, func(args map[string]interface{}) pubsub.Predicate {
					moleculeID, ok := args["moleculeId"].(string)
					if !ok {
						return nil
					}
					return func(ev pubsub.Event) bool {
						pred, ok := ev.Payload.(*store.MLPrediction)
						return ok && pred.MoleculeID == moleculeID
					}
				}),
			},
		},
	})
}

func resolveSource(p graphql.ResolveParams) (interface{}, error) {
	return p.Source, nil
}

// subscribeTo builds the Subscribe resolver for one topic. makePred, when
// non-nil, derives a delivery predicate from the field arguments; a nil
// predicate delivers every event on the topic.
func (s *Schema) subscribeTo(topic pubsub.Topic, makePred func(map[string]interface{}) pubsub.Predicate) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (interface{}, error) {
		if _, err := requireIdentity(p.Context); err != nil {
			return nil, err
		}

		var pred pubsub.Predicate
		if makePred != nil {
			pred = makePred(p.Args)
		}
		sub := s.bus.Subscribe(pred, topic)

		out := make(chan interface{})
		go func() {
			defer close(out)
			defer sub.Unsubscribe()
			for {
				select {
				case <-p.Context.Done():
					return
				case ev, ok := <-sub.C:
					if !ok {
						return
					}
					select {
					case out <- ev.Payload:
					case <-p.Context.Done():
						return
					}
				}
			}
		}()
		return out, nil
	}
}
