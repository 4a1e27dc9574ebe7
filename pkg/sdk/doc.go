// Package profilematch ranks candidate profiles by similarity to a query
// profile, in process, without running the HTTP server.
//
// Each profile is rendered into a short description (hobbies, political view,
// religion, relationship goal), the query and candidates are vectorized with
// TF-IDF over that request's documents only, and every candidate's cosine
// similarity is scaled by a political-view weight.
//
// # Typed API
//
//	client, _ := profilematch.New(
//	    profilematch.WithPoliticalWeights(map[string]float64{"left": 1.2}),
//	    profilematch.WithMaxCandidates(500),
//	)
//	matches, _ := client.Rank(ctx, user, candidates)
//	for _, m := range matches {
//	    fmt.Println(m.Profile.ID, m.Score)
//	}
//
// # Wire API
//
//	out, _ := client.RankJSON(ctx, body) // {"user": ..., "profiles": [...]} in, {"suggested_profiles": [...]} out
package profilematch
