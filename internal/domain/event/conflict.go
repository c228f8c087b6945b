package event

import "github.com/Laustrup/go-gig-booking/internal/domain/gig"

// FilterConflicts は候補の演奏枠を衝突フィルターに通し、受理分と棄却分に分ける
//
// 衝突の判定: 出演者を1名以上共有し、かつ時間帯が重なる場合に衝突とする
// 完全な重複（同じ出演者集合かつ同じ時間帯）は再追加の冪等性のため棄却する
// 候補は既存の演奏枠と、先に受理された候補の両方と突き合わせる
func FilterConflicts(existing, candidates []*gig.Gig) (accepted, rejected []*gig.Gig) {
	for _, candidate := range candidates {
		if conflictsWithAny(existing, candidate) || conflictsWithAny(accepted, candidate) {
			rejected = append(rejected, candidate)
			continue
		}
		accepted = append(accepted, candidate)
	}
	return accepted, rejected
}

func conflictsWithAny(gigs []*gig.Gig, candidate *gig.Gig) bool {
	for _, g := range gigs {
		if g.SameBooking(candidate) {
			return true
		}
		if g.SharesPerformer(candidate) && g.Overlaps(candidate) {
			return true
		}
	}
	return false
}
