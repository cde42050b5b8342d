package i18n

var catalog = map[Locale]map[string]string{
	English: {
		"app.name":    "Talent Finder",
		"app.tagline": "Find collaborators across the consortium",

		"nav.home":         "Home",
		"nav.dashboard":    "Dashboard",
		"nav.consent":      "Privacy",
		"nav.institutions": "Institutions",
		"nav.repository":   "Repository",
		"nav.settings":     "Settings",
		"nav.login":        "Sign in",
		"nav.logout":       "Sign out",

		"home.title": "Discover academic collaborators",
		"home.lead":  "Talent Finder brings together researchers from the %s consortium using open bibliographic data.",
		"home.cta":   "Get started",

		"login.title":    "Sign in",
		"login.lead":     "Enter your email address and we will send you a sign-in link.",
		"login.email":    "Email address",
		"login.submit":   "Send me a link",
		"login.invalid":  "Please enter a valid email address.",
		"login.rate":     "Too many requests. Please wait a minute and try again.",
		"sent.title":     "Check your inbox",
		"sent.lead":      "If an account can be used with this address, a sign-in link is on its way. It expires in %d minutes.",
		"magic.invalid":  "This sign-in link is invalid or has expired. Please request a new one.",
		"magic.success":  "You are signed in.",
		"logout.success": "You have been signed out.",
		"auth.required":  "Please sign in to continue.",
		"email.subject":  "Your Talent Finder sign-in link",
		"email.greeting": "Hello,",
		"email.body":     "Use the button below to sign in. The link can be used once and expires in %d minutes.",
		"email.button":   "Sign in",
		"email.ignore":   "If you did not request this email you can ignore it.",

		"dashboard.title":   "Dashboard",
		"dashboard.welcome": "Welcome, %s",
		"dashboard.consent": "You have granted %d of %d permissions.",

		"consent.title":                   "Privacy and consent",
		"consent.lead":                    "Choose what Talent Finder may do with your data. You can change your mind at any time.",
		"consent.analytics":               "Usage analytics",
		"consent.analytics.help":          "Anonymous statistics that help us improve the service.",
		"consent.profile_visibility":      "Profile visibility",
		"consent.profile_visibility.help": "Other consortium members can see your profile.",
		"consent.contact":                 "Contact",
		"consent.contact.help":            "Other researchers may contact you about collaborations.",
		"consent.openalex_matching":       "OpenAlex matching",
		"consent.openalex_matching.help":  "Match your account with your OpenAlex author record.",
		"consent.granted":                 "Granted",
		"consent.revoked":                 "Not granted",
		"consent.grant":                   "Grant",
		"consent.revoke":                  "Revoke",
		"consent.history":                 "History",
		"consent.history.empty":           "No changes yet.",
		"consent.updated":                 "Your preferences have been saved.",
		"consent.action.grant":            "granted",
		"consent.action.revoke":           "revoked",

		"institutions.title":    "Institution statistics",
		"institutions.lead":     "Publication output of the consortium members over the last %d years, from OpenAlex.",
		"institutions.works":    "Works",
		"institutions.authors":  "Authors",
		"institutions.before":   "Before %d",
		"institutions.latency":  "Fetched in %d ms",
		"institutions.error":    "OpenAlex could not be reached. Please try again later.",
		"institutions.search":   "Search an institution",
		"institutions.members":  "Members",
		"institutions.articles": "Articles by year",
		"institutions.none":     "No institution found.",

		"repository.title":     "Repository",
		"repository.commits":   "Commits",
		"repository.authors":   "Contributors",
		"repository.lines":     "Lines of code",
		"repository.hourly":    "Commits by hour",
		"repository.weekdays":  "Commits by weekday",
		"repository.recent":    "Recent commits",
		"repository.issues":    "Open issues",
		"repository.pulls":     "Open pull requests",
		"repository.missing":   "No statistics have been generated yet. Run talent-cli gitstats.",
		"repository.tests":     "Tests",
		"repository.todos":     "TODOs",
		"repository.updated":   "Generated %s",
		"repository.files":     "Source files",
		"repository.functions": "Functions",
		"repository.author":    "Author",

		"weekday.mon": "Mon",
		"weekday.tue": "Tue",
		"weekday.wed": "Wed",
		"weekday.thu": "Thu",
		"weekday.fri": "Fri",
		"weekday.sat": "Sat",
		"weekday.sun": "Sun",

		"health.title":   "Service health",
		"health.live":    "Checks run live; results appear as each one completes.",
		"health.pending": "Pending",
		"health.ok":      "OK",
		"health.fail":    "Failing",

		"settings.title":  "Settings",
		"settings.locale": "Language",
		"settings.theme":  "Theme",
		"settings.save":   "Save",
		"settings.saved":  "Settings saved.",

		"theme.light":      "Light",
		"theme.dark":       "Dark",
		"theme.consortium": "Consortium",

		"error.generic":     "Something went wrong. Please try again.",
		"error.not_found":   "Page not found.",
		"error.bad_request": "The request could not be understood.",
		"error.unavailable": "A service is temporarily unavailable.",
	},
	French: {
		"app.tagline": "Trouvez des collaborateurs dans tout le consortium",

		"nav.home":         "Accueil",
		"nav.dashboard":    "Tableau de bord",
		"nav.consent":      "Confidentialité",
		"nav.institutions": "Établissements",
		"nav.repository":   "Dépôt",
		"nav.settings":     "Paramètres",
		"nav.login":        "Se connecter",
		"nav.logout":       "Se déconnecter",

		"home.title": "Découvrez des collaborateurs académiques",
		"home.lead":  "Talent Finder rassemble les chercheurs du consortium %s grâce aux données bibliographiques ouvertes.",
		"home.cta":   "Commencer",

		"login.title":    "Connexion",
		"login.lead":     "Saisissez votre adresse e-mail et nous vous enverrons un lien de connexion.",
		"login.email":    "Adresse e-mail",
		"login.submit":   "Recevoir un lien",
		"login.invalid":  "Veuillez saisir une adresse e-mail valide.",
		"login.rate":     "Trop de demandes. Veuillez patienter une minute.",
		"sent.title":     "Consultez votre boîte de réception",
		"sent.lead":      "Si un compte peut utiliser cette adresse, un lien de connexion est en route. Il expire dans %d minutes.",
		"magic.invalid":  "Ce lien de connexion est invalide ou a expiré. Veuillez en demander un nouveau.",
		"magic.success":  "Vous êtes connecté.",
		"logout.success": "Vous êtes déconnecté.",
		"auth.required":  "Veuillez vous connecter pour continuer.",
		"email.subject":  "Votre lien de connexion Talent Finder",
		"email.greeting": "Bonjour,",
		"email.body":     "Utilisez le bouton ci-dessous pour vous connecter. Le lien est à usage unique et expire dans %d minutes.",
		"email.button":   "Se connecter",
		"email.ignore":   "Si vous n'avez pas demandé cet e-mail, vous pouvez l'ignorer.",

		"dashboard.title":   "Tableau de bord",
		"dashboard.welcome": "Bienvenue, %s",
		"dashboard.consent": "Vous avez accordé %d autorisations sur %d.",

		"consent.title":                   "Confidentialité et consentement",
		"consent.lead":                    "Choisissez ce que Talent Finder peut faire de vos données. Vous pouvez changer d'avis à tout moment.",
		"consent.analytics":               "Statistiques d'usage",
		"consent.analytics.help":          "Des statistiques anonymes qui nous aident à améliorer le service.",
		"consent.profile_visibility":      "Visibilité du profil",
		"consent.profile_visibility.help": "Les membres du consortium peuvent voir votre profil.",
		"consent.contact":                 "Contact",
		"consent.contact.help":            "D'autres chercheurs peuvent vous contacter pour collaborer.",
		"consent.openalex_matching":       "Rapprochement OpenAlex",
		"consent.openalex_matching.help":  "Associer votre compte à votre fiche auteur OpenAlex.",
		"consent.granted":                 "Accordé",
		"consent.revoked":                 "Non accordé",
		"consent.grant":                   "Accorder",
		"consent.revoke":                  "Retirer",
		"consent.history":                 "Historique",
		"consent.history.empty":           "Aucun changement pour l'instant.",
		"consent.updated":                 "Vos préférences ont été enregistrées.",
		"consent.action.grant":            "accordé",
		"consent.action.revoke":           "retiré",

		"institutions.title":    "Statistiques des établissements",
		"institutions.lead":     "Production scientifique des membres du consortium sur les %d dernières années, d'après OpenAlex.",
		"institutions.works":    "Publications",
		"institutions.authors":  "Auteurs",
		"institutions.before":   "Avant %d",
		"institutions.latency":  "Obtenu en %d ms",
		"institutions.error":    "OpenAlex est injoignable. Veuillez réessayer plus tard.",
		"institutions.search":   "Rechercher un établissement",
		"institutions.members":  "Membres",
		"institutions.articles": "Articles par année",
		"institutions.none":     "Aucun établissement trouvé.",

		"repository.title":     "Dépôt",
		"repository.commits":   "Commits",
		"repository.authors":   "Contributeurs",
		"repository.lines":     "Lignes de code",
		"repository.hourly":    "Commits par heure",
		"repository.weekdays":  "Commits par jour",
		"repository.recent":    "Commits récents",
		"repository.issues":    "Tickets ouverts",
		"repository.pulls":     "Pull requests ouvertes",
		"repository.missing":   "Aucune statistique n'a encore été générée. Lancez talent-cli gitstats.",
		"repository.tests":     "Tests",
		"repository.todos":     "TODO",
		"repository.updated":   "Généré le %s",
		"repository.files":     "Fichiers source",
		"repository.functions": "Fonctions",
		"repository.author":    "Auteur",

		"weekday.mon": "Lun",
		"weekday.tue": "Mar",
		"weekday.wed": "Mer",
		"weekday.thu": "Jeu",
		"weekday.fri": "Ven",
		"weekday.sat": "Sam",
		"weekday.sun": "Dim",

		"health.title":   "État du service",
		"health.live":    "Les vérifications s'exécutent en direct ; les résultats s'affichent au fur et à mesure.",
		"health.pending": "En attente",
		"health.ok":      "OK",
		"health.fail":    "En échec",

		"settings.title":  "Paramètres",
		"settings.locale": "Langue",
		"settings.theme":  "Thème",
		"settings.save":   "Enregistrer",
		"settings.saved":  "Paramètres enregistrés.",

		"theme.light":      "Clair",
		"theme.dark":       "Sombre",
		"theme.consortium": "Consortium",

		"error.generic":     "Une erreur est survenue. Veuillez réessayer.",
		"error.not_found":   "Page introuvable.",
		"error.bad_request": "La requête est invalide.",
		"error.unavailable": "Un service est temporairement indisponible.",
	},
}
