package component

// AttackScript names a tengo script that may pick among ready attacks.
type AttackScript struct {
	Path string
}

var AttackScriptComponent = NewComponent[AttackScript]()
